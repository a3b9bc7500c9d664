package model

import "time"

// User represents an application user record as stored in the `users`
// table. Handlers define separate response types with JSON tags; these
// structs stay internal to the repository layer.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique display name, 3-20 chars.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
//  LastLogin    – last successful login (null until first login).
type User struct {
	ID           uint64     // users.id
	Username     string     // users.username
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	IsActive     bool       // users.is_active
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
	LastLogin    *time.Time // users.last_login (nullable)
}
