package model

import "time"

// Room is a chat room row from the `rooms` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique room name, 1-100 chars.
//  Description – optional description, up to 500 chars.
//  CreatedBy   – user who created the room.
//  IsPrivate   – whether the room is invite-only.
//  CreatedAt   – creation timestamp.
type Room struct {
	ID          uint64    // rooms.id
	Name        string    // rooms.name
	Description string    // rooms.description
	CreatedBy   uint64    // rooms.created_by
	IsPrivate   bool      // rooms.is_private
	CreatedAt   time.Time // rooms.created_at
}

// RoomMember links a user to a room with a role. One row per membership in
// the `room_members` table.
type RoomMember struct {
	UserID   uint64    // room_members.user_id
	RoomID   uint64    // room_members.room_id
	Role     string    // room_members.role (member, admin)
	JoinedAt time.Time // room_members.joined_at
}
