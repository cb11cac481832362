package repository

import (
	"context"
	"testing"
	"time"

	"themisai-backend/models"
	"themisai-backend/vectorindex"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestProfileRepository_GetByID(t *testing.T) {
	personCols := []string{"id", "full_name", "email", "phone_number", "created_at", "updated_at",
		"address_id", "line1", "city", "state", "postal_code", "country"}

	t.Run("Should load person with address", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)
		id := uuid.New()
		addrID := uuid.New()
		now := time.Now()

		rows := mock.NewRows(personCols).AddRow(
			id, "Budi Santoso", strPtr("budi@example.com"), (*string)(nil), now, now,
			&addrID, strPtr("Jl. Sudirman No. 1"), strPtr("Jakarta Selatan"), (*string)(nil), (*string)(nil), strPtr("Indonesia"),
		)
		mock.ExpectQuery("SELECT (.+) FROM person p LEFT JOIN address a").
			WithArgs(id).
			WillReturnRows(rows)

		person, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Budi Santoso", person.FullName)
		require.NotNil(t, person.Address)
		assert.Equal(t, "Jakarta Selatan", *person.Address.City)
		assert.Nil(t, person.Address.State)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should leave address nil when none is stored", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)
		id := uuid.New()
		now := time.Now()

		rows := mock.NewRows(personCols).AddRow(
			id, "Siti", (*string)(nil), (*string)(nil), now, now,
			(*uuid.UUID)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
		)
		mock.ExpectQuery("SELECT (.+) FROM person p").WithArgs(id).WillReturnRows(rows)

		person, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, person.Address)
	})

	t.Run("Should map missing rows to ErrProfileNotFound", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)
		id := uuid.New()
		mock.ExpectQuery("SELECT (.+) FROM person p").WithArgs(id).WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestDocumentRepository_ListByIDs(t *testing.T) {
	cols := []string{"id", "path", "doc_type", "title", "extracted_text", "uploaded_at"}

	t.Run("Should keep request order and skip unknown ids", func(t *testing.T) {
		mock := newMock(t)
		repo := NewDocumentRepository(mock)
		a, b, missing := uuid.New(), uuid.New(), uuid.New()
		now := time.Now()

		rows := mock.NewRows(cols).
			AddRow(b, "uploads/b.txt", models.DocTypeOther, (*string)(nil), strPtr("isi b"), now).
			AddRow(a, "uploads/a.txt", models.DocTypeStatute, strPtr("UU ITE"), (*string)(nil), now)
		ids := []uuid.UUID{a, missing, b}
		mock.ExpectQuery("SELECT (.+) FROM document_store WHERE id = ANY").
			WithArgs(ids).
			WillReturnRows(rows)

		docs, err := repo.ListByIDs(context.Background(), ids)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, a, docs[0].ID)
		assert.Equal(t, "UU ITE", docs[0].DisplayName())
		assert.Equal(t, b, docs[1].ID)
		assert.Equal(t, "uploads/b.txt", docs[1].DisplayName())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should not query for an empty id list", func(t *testing.T) {
		mock := newMock(t)
		docs, err := NewDocumentRepository(mock).ListByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewDocumentRepository(mock)
	id := uuid.New()
	now := time.Now()
	doc := &models.Document{Path: "uploads/x.txt", DocType: models.DocTypeOther, ExtractedText: strPtr("teks")}

	mock.ExpectQuery("INSERT INTO document_store").
		WithArgs(doc.Path, doc.DocType, doc.Title, doc.ExtractedText).
		WillReturnRows(mock.NewRows([]string{"id", "uploaded_at"}).AddRow(id, now))

	require.NoError(t, repo.Create(context.Background(), doc))
	assert.Equal(t, id, doc.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVectorRepository(t *testing.T) {
	t.Run("Should inspect table and search by inner product", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE\\(MAX\\(vector_dims\\(embedding\\)\\), 0\\) FROM lawyer_vectors").
			WillReturnRows(mock.NewRows([]string{"count", "dims"}).AddRow(3, 2))

		repo, err := NewVectorRepository(context.Background(), mock, "lawyer_vectors")
		require.NoError(t, err)
		assert.Equal(t, 3, repo.Len())
		assert.Equal(t, 2, repo.Dimension())

		query := []float32{0.6, 0.8}
		mock.ExpectQuery("SELECT position, \\(embedding <#> \\$1::vector\\) \\* -1 AS similarity FROM lawyer_vectors").
			WithArgs(pgvector.NewVector(query), 2).
			WillReturnRows(mock.NewRows([]string{"position", "similarity"}).
				AddRow(2, 0.97).
				AddRow(0, 0.5))

		hits, err := repo.Search(context.Background(), query, 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, 2, hits[0].Position)
		assert.InDelta(t, 0.97, hits[0].Similarity, 1e-6)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should reject queries of the wrong dimension", func(t *testing.T) {
		repo := &VectorRepository{table: "t", dimension: 3, count: 1}
		_, err := repo.Search(context.Background(), []float32{1}, 1)
		assert.ErrorIs(t, err, vectorindex.ErrDimensionMismatch)
	})

	t.Run("Should reject unsafe table names", func(t *testing.T) {
		_, err := NewVectorRepository(context.Background(), newMock(t), "x; DROP TABLE person")
		assert.Error(t, err)
	})
}

func TestCreateAndInsertVectors(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS vector").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("DROP TABLE IF EXISTS legal_vectors").WillReturnResult(pgxmock.NewResult("DROP", 0))
	mock.ExpectExec("CREATE TABLE legal_vectors \\(position INTEGER PRIMARY KEY, embedding vector\\(2\\) NOT NULL\\)").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO legal_vectors").
		WithArgs(10, pgvector.NewVector([]float32{1, 0})).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO legal_vectors").
		WithArgs(11, pgvector.NewVector([]float32{0, 1})).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	ctx := context.Background()
	require.NoError(t, CreateVectorTable(ctx, mock, "legal_vectors", 2))
	require.NoError(t, InsertVectors(ctx, mock, "legal_vectors", 10, [][]float32{{1, 0}, {0, 1}}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
