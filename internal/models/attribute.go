package models

import "github.com/google/uuid"

// Attribute is a user-owned name attachable to recipes.
// Tags and ingredients share this shape and live in separate tables.
type Attribute struct {
	ID     int64     `json:"id" db:"id"`
	UserID uuid.UUID `json:"-" db:"user_id"`
	Name   string    `json:"name" db:"name"`
}
