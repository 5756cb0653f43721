package dto

import (
	"time"
)

type SessionOutput struct {
	ID               string    `json:"id"`
	Fingerprint      string    `json:"fingerprint"`
	CreatedAt        time.Time `json:"created_at"`
	RefreshExpiredAt time.Time `json:"refresh_expired_at"`
}
