package repository

import (
	"context"
	"errors"
	"fmt"

	"themisai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrProfileExists is returned when a profile with the same email already exists
var ErrProfileExists = errors.New("profile already exists")

// CreateProfile inserts a person with a bcrypt password hash and, when set, its address
func (r *ProfileRepository) CreateProfile(ctx context.Context, person *models.Person, password string) error {
	if person.Email != nil {
		var existing uuid.UUID
		err := r.db.QueryRow(ctx, `SELECT id FROM person WHERE email = $1`, *person.Email).Scan(&existing)
		if err == nil {
			person.ID = existing
			return ErrProfileExists
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to check existing profile: %w", err)
		}
	}

	var hash *string
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(b)
		hash = &h
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO person (full_name, email, phone_number, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		person.FullName, person.Email, person.PhoneNumber, hash,
	).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if a := person.Address; a != nil {
		_, err = r.db.Exec(ctx, `
			INSERT INTO address (person_id, line1, city, state, postal_code, country)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			person.ID, a.Line1, a.City, a.State, a.PostalCode, a.Country,
		)
		if err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
	}
	return nil
}
