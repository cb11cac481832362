package repository

import (
	"context"
	"errors"
	"fmt"

	"themisai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProfileRepository reads user profiles and their addresses
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByID retrieves a person with the attached address, if any
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	query := `
		SELECT p.id, p.full_name, p.email, p.phone_number, p.created_at, p.updated_at,
			a.id, a.line1, a.city, a.state, a.postal_code, a.country
		FROM person p
		LEFT JOIN address a ON a.person_id = p.id
		WHERE p.id = $1`

	person := &models.Person{}
	var (
		addressID *uuid.UUID
		addr      models.Address
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&person.ID,
		&person.FullName,
		&person.Email,
		&person.PhoneNumber,
		&person.CreatedAt,
		&person.UpdatedAt,
		&addressID,
		&addr.Line1,
		&addr.City,
		&addr.State,
		&addr.PostalCode,
		&addr.Country,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if addressID != nil {
		person.Address = &addr
	}
	return person, nil
}
