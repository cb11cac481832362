package repository

import (
	"context"
	"errors"
	"fmt"

	"themisai-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DocumentRepository handles database operations for stored documents
type DocumentRepository struct {
	db DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO document_store (path, doc_type, title, extracted_text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, uploaded_at`

	err := r.db.QueryRow(ctx, query,
		doc.Path,
		doc.DocType,
		doc.Title,
		doc.ExtractedText,
	).Scan(&doc.ID, &doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT id, path, doc_type, title, extracted_text, uploaded_at
		FROM document_store
		WHERE id = $1`

	doc := &models.Document{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.Path,
		&doc.DocType,
		&doc.Title,
		&doc.ExtractedText,
		&doc.UploadedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// ListByIDs retrieves documents in the order of ids. Unknown ids are skipped.
func (r *DocumentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, path, doc_type, title, extracted_text, uploaded_at
		FROM document_store
		WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*models.Document, len(ids))
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(
			&doc.ID,
			&doc.Path,
			&doc.DocType,
			&doc.Title,
			&doc.ExtractedText,
			&doc.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		byID[doc.ID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	docs := make([]*models.Document, 0, len(byID))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			docs = append(docs, doc)
			delete(byID, id)
		}
	}
	return docs, nil
}
