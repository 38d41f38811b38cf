package model

import "time"

// User represents a registered account. Accounts start unverified and cannot
// authenticate until the verification token is redeemed.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"displayName" gorm:"size:100;not null"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Verified          bool      `json:"verified" gorm:"default:false"`
	VerificationToken *string   `json:"-" gorm:"size:255;index"` // Doubles as the password-reset token
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
