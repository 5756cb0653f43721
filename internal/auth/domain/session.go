package domain

import "time"

// Session is one record per successful login per device. Records are created
// by the session service, never mutated in place, and destroyed on logout.
type Session struct {
	ID               string
	UserID           string
	Email            string
	Fingerprint      string
	AccessToken      string
	RefreshToken     string
	RefreshExpiredAt time.Time
	CreatedAt        time.Time
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
