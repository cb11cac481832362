package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"themisai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pgcrypto").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS person").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS address").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS document_store").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("ALTER TABLE document_store ADD COLUMN IF NOT EXISTS extracted_text").WillReturnResult(pgxmock.NewResult("ALTER", 0))

	require.NoError(t, CreateSchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchema_Error(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE EXTENSION").WillReturnError(errors.New("permission denied"))

	err := CreateSchema(context.Background(), mock)
	assert.ErrorContains(t, err, "permission denied")
}

func TestProfileRepository_CreateProfile(t *testing.T) {
	t.Run("Should insert person and address", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)
		id := uuid.New()
		now := time.Now()
		person := &models.Person{
			FullName: "Budi Santoso",
			Email:    strPtr("budi@example.com"),
			Address:  &models.Address{Line1: strPtr("Jl. Sudirman No. 1"), City: strPtr("Jakarta Selatan")},
		}

		mock.ExpectQuery("SELECT id FROM person WHERE email").
			WithArgs("budi@example.com").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery("INSERT INTO person").
			WithArgs("Budi Santoso", person.Email, (*string)(nil), pgxmock.AnyArg()).
			WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))
		mock.ExpectExec("INSERT INTO address").
			WithArgs(id, person.Address.Line1, person.Address.City, (*string)(nil), (*string)(nil), (*string)(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.CreateProfile(context.Background(), person, "rahasia123"))
		assert.Equal(t, id, person.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report an existing email", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)
		existing := uuid.New()

		mock.ExpectQuery("SELECT id FROM person WHERE email").
			WithArgs("budi@example.com").
			WillReturnRows(mock.NewRows([]string{"id"}).AddRow(existing))

		person := &models.Person{FullName: "Budi", Email: strPtr("budi@example.com")}
		err := repo.CreateProfile(context.Background(), person, "")

		assert.ErrorIs(t, err, ErrProfileExists)
		assert.Equal(t, existing, person.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
