package repository

import (
	"context"
	"fmt"
)

// schemaStatements create the profile and document tables. They are idempotent.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS person (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name VARCHAR(200) NOT NULL,
		date_of_birth DATE,
		gender VARCHAR(16) NOT NULL DEFAULT 'unknown' CHECK (gender IN ('male', 'female', 'unknown')),
		phone_number VARCHAR(32),
		email VARCHAR(255) UNIQUE,
		password_hash VARCHAR(255),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS address (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		person_id UUID NOT NULL UNIQUE REFERENCES person(id) ON DELETE CASCADE,
		line1 VARCHAR(200),
		city VARCHAR(120),
		state VARCHAR(120),
		postal_code VARCHAR(24),
		country VARCHAR(120)
	)`,
	`CREATE TABLE IF NOT EXISTS document_store (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		path VARCHAR(1024) NOT NULL,
		doc_type VARCHAR(16) NOT NULL DEFAULT 'other' CHECK (doc_type IN ('statute', 'case_law', 'regulation', 'other')),
		title VARCHAR(255),
		extracted_text TEXT,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE document_store ADD COLUMN IF NOT EXISTS extracted_text TEXT`,
}

// CreateSchema creates the person, address and document_store tables if missing
func CreateSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
