package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/chat-backend/internal/model"
)

type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomCols = "id,name,description,created_by,is_private,created_at"

// Create inserts a room and immediately adds the creator as admin member.
func (r *RoomRepo) Create(ctx context.Context, name, description string, createdBy uint64, isPrivate bool) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (name, description, created_by, is_private) VALUES (?,?,?,?)",
		name, description, createdBy, isPrivate)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	roomID := uint64(id)
	if err := r.AddMember(ctx, createdBy, roomID, "admin"); err != nil {
		return 0, err
	}
	return roomID, nil
}

// GetByID fetches a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomCols+" FROM rooms WHERE id=? LIMIT 1", id))
}

// List returns all rooms ordered by creation.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	return r.queryRooms(ctx, "SELECT "+roomCols+" FROM rooms ORDER BY id")
}

// ListByUser returns the rooms a user is a member of.
func (r *RoomRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Room, error) {
	return r.queryRooms(ctx,
		"SELECT r.id,r.name,r.description,r.created_by,r.is_private,r.created_at "+
			"FROM rooms r JOIN room_members m ON m.room_id=r.id WHERE m.user_id=? ORDER BY r.id",
		userID)
}

// Update changes name and description of a room.
func (r *RoomRepo) Update(ctx context.Context, id uint64, name, description string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE rooms SET name=?, description=? WHERE id=?", name, description, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	return requireRow(res)
}

// Delete removes a room; memberships and messages cascade in the schema.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// AddMember inserts a membership row. Re-joining yields ErrDuplicate.
func (r *RoomRepo) AddMember(ctx context.Context, userID, roomID uint64, role string) error {
	if role == "" {
		role = "member"
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO room_members (user_id, room_id, role) VALUES (?,?,?)",
		userID, roomID, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// RemoveMember deletes a membership row.
func (r *RoomRepo) RemoveMember(ctx context.Context, userID, roomID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM room_members WHERE user_id=? AND room_id=?", userID, roomID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Members lists the users in a room.
func (r *RoomRepo) Members(ctx context.Context, roomID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT u.id,u.username,u.email,u.password_hash,u.is_active,u.created_at,u.updated_at,u.last_login "+
			"FROM users u JOIN room_members m ON m.user_id=u.id WHERE m.room_id=? ORDER BY u.id",
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// IsMember reports whether the user belongs to the room.
func (r *RoomRepo) IsMember(ctx context.Context, userID, roomID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM room_members WHERE user_id=? AND room_id=? LIMIT 1",
		userID, roomID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RoomRepo) queryRooms(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Description, &rm.CreatedBy,
			&rm.IsPrivate, &rm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func scanRoom(row *sql.Row) (model.Room, error) {
	var rm model.Room
	err := row.Scan(&rm.ID, &rm.Name, &rm.Description, &rm.CreatedBy,
		&rm.IsPrivate, &rm.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Room{}, ErrNotFound
	}
	return rm, err
}
