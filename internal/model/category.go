package model

import "time"

type Category struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Locked    bool      `json:"locked"` // системная категория, удалять нельзя
	CreatedAt time.Time `json:"created_at,omitempty"`
}
