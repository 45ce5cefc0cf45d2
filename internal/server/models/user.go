package models

import "time"

// User is an account that owns encrypted objects. PasswordHash is a bcrypt
// hash of the login password, which is unrelated to the vault password used
// for encryption and never reaches the server.
type User struct {
	ID           string
	Login        string
	PasswordHash []byte
	CreatedAt    time.Time
}
