package model

import "time"

// BaseModel carries the server-assigned identity and timestamps.
type BaseModel struct {
	ID        string     `json:"_id,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Persisted reports whether the server has assigned an id.
func (b BaseModel) Persisted() bool {
	return b.ID != ""
}
