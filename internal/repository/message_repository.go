package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/chat-backend/internal/model"
)

type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

const messageCols = "id,room_id,user_id,content,message_type,created_at,edited_at,is_deleted"

// Create stores a message and returns the full row including timestamps.
func (r *MessageRepo) Create(ctx context.Context, roomID, userID uint64, content, messageType string) (model.Message, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (room_id, user_id, content, message_type) VALUES (?,?,?,?)",
		roomID, userID, content, messageType)
	if err != nil {
		return model.Message{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Message{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a message by id, deleted or not.
func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (model.Message, error) {
	var m model.Message
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+messageCols+" FROM messages WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.RoomID, &m.UserID, &m.Content, &m.MessageType,
			&m.CreatedAt, &m.EditedAt, &m.IsDeleted)
	if err == sql.ErrNoRows {
		return model.Message{}, ErrNotFound
	}
	return m, err
}

// ListByRoom returns a page of messages for a room, newest last.
func (r *MessageRepo) ListByRoom(ctx context.Context, roomID uint64, limit, offset int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+messageCols+" FROM messages WHERE room_id=? ORDER BY id LIMIT ? OFFSET ?",
		roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.UserID, &m.Content, &m.MessageType,
			&m.CreatedAt, &m.EditedAt, &m.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateContent edits a message body and stamps edited_at.
func (r *MessageRepo) UpdateContent(ctx context.Context, id uint64, content string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET content=?, edited_at=NOW() WHERE id=? AND is_deleted=0",
		content, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete soft-deletes a message.
func (r *MessageRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE messages SET is_deleted=1 WHERE id=? AND is_deleted=0", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
