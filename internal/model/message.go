package model

import "time"

// Message is a chat message row from the `messages` table. Deletion is a
// soft delete: the row stays and is_deleted flips, so history endpoints can
// still show a tombstone.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – room the message was posted in.
//  UserID      – author of the message.
//  Content     – message text, 1-1000 chars.
//  MessageType – one of text, image, file.
//  CreatedAt   – creation timestamp.
//  EditedAt    – last edit time (null until first edit).
//  IsDeleted   – soft delete flag.
type Message struct {
	ID          uint64     // messages.id
	RoomID      uint64     // messages.room_id
	UserID      uint64     // messages.user_id
	Content     string     // messages.content
	MessageType string     // messages.message_type
	CreatedAt   time.Time  // messages.created_at
	EditedAt    *time.Time // messages.edited_at (nullable)
	IsDeleted   bool       // messages.is_deleted
}
