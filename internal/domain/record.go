package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiaryRecord is the persisted diary entry. The store owns id and both
// timestamps; callers never set them. UpdatedAt is nil until the first
// update and refreshed on every subsequent one.
type DiaryRecord struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	Band      string     `json:"band"`
	Album     string     `json:"album"`
	Thoughts  string     `json:"thoughts"`
}
