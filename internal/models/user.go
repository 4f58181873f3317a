package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Account      string    `json:"account"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
