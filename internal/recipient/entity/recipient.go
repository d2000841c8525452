package entity

import "time"

// Recipient is an address-book entry drafts can be sent to.
//
// Email is stored lowercase and is unique across all recipients.
type Recipient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
