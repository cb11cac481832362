package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents the user asking questions
type Person struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       *string   `json:"email,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Address     *Address  `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Address represents the postal address on a user's profile
type Address struct {
	Line1      *string `json:"line1,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    *string `json:"country,omitempty"`
}
