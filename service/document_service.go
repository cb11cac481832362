package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"themisai-backend/logger"
	"themisai-backend/models"
	"themisai-backend/storage"

	"github.com/google/uuid"
)

const (
	DefaultPerDocumentMaxChars = 4000
	documentCutMarker          = "\n\n...[dipotong, dokumen terlalu panjang]"
	uploadPrefix               = "uploads"
)

// plainTextExtensions can be read from storage without extraction
var plainTextExtensions = map[string]bool{"": true, ".txt": true, ".md": true}

// DocumentStore loads document records
type DocumentStore interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Document, error)
	Create(ctx context.Context, doc *models.Document) error
}

// DocumentService turns attached documents into prompt excerpts
type DocumentService struct {
	store    DocumentStore
	storage  storage.Storage
	maxChars int
	logger   logger.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocumentWithStore sets the document store
func DocumentWithStore(store DocumentStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.store = store
	}
}

// DocumentWithStorage sets the object storage holding uploaded files
func DocumentWithStorage(st storage.Storage) DocumentServiceOption {
	return func(s *DocumentService) {
		s.storage = st
	}
}

// DocumentWithMaxChars caps each excerpt
func DocumentWithMaxChars(n int) DocumentServiceOption {
	return func(s *DocumentService) {
		s.maxChars = n
	}
}

// DocumentWithLogger sets the logger
func DocumentWithLogger(l logger.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.logger = l
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{
		maxChars: DefaultPerDocumentMaxChars,
		logger:   logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Excerpt is one document's contribution. Err is set when the document was skipped.
type Excerpt struct {
	DocumentID uuid.UUID
	Name       string
	Text       string
	Err        error
}

// ExcerptResult holds the joined prompt text and the per-document outcomes
type ExcerptResult struct {
	Text     string
	Excerpts []Excerpt
}

// Excerpts renders "[DOKUMEN: name]\ntext" blocks for ids. Failing documents are logged and skipped.
func (s *DocumentService) Excerpts(ctx context.Context, ids []uuid.UUID) (*ExcerptResult, error) {
	result := &ExcerptResult{}
	if len(ids) == 0 {
		return result, nil
	}

	docs, err := s.store.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	var parts []string
	for _, doc := range docs {
		excerpt := Excerpt{DocumentID: doc.ID, Name: doc.DisplayName()}
		text, err := s.documentText(ctx, doc)
		if err != nil {
			excerpt.Err = err
			s.logger.Warn("skipping document", "document_id", doc.ID, "path", doc.Path, "error", err)
			result.Excerpts = append(result.Excerpts, excerpt)
			continue
		}

		excerpt.Text = capDocument(text, s.maxChars)
		result.Excerpts = append(result.Excerpts, excerpt)
		parts = append(parts, fmt.Sprintf("[DOKUMEN: %s]\n%s", excerpt.Name, excerpt.Text))
	}

	result.Text = strings.Join(parts, "\n\n")
	return result, nil
}

func (s *DocumentService) documentText(ctx context.Context, doc *models.Document) (string, error) {
	if doc.ExtractedText != nil {
		if text := strings.TrimSpace(*doc.ExtractedText); text != "" {
			return text, nil
		}
	}

	if !plainTextExtensions[strings.ToLower(path.Ext(doc.Path))] || s.storage == nil {
		return "", ErrDocumentNoText
	}

	data, err := storage.ReadAll(ctx, s.storage, doc.Path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrDocumentNoText
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrDocumentNoText
	}
	return text, nil
}

func capDocument(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + documentCutMarker
}

// UploadDocumentRequest represents an uploaded file
type UploadDocumentRequest struct {
	Filename string
	Title    *string
	DocType  models.DocType
	Content  io.Reader
}

// Upload stores the file and records it. Plain-text files keep their text for later excerpts.
func (s *DocumentService) Upload(ctx context.Context, req UploadDocumentRequest) (*models.Document, error) {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	ext := strings.ToLower(path.Ext(req.Filename))
	key := path.Join(uploadPrefix, uuid.NewString()+ext)
	if err := s.storage.Put(ctx, key, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	docType := req.DocType
	if docType == "" {
		docType = models.DocTypeOther
	}
	doc := &models.Document{Path: key, DocType: docType, Title: req.Title}
	if plainTextExtensions[ext] && utf8.Valid(data) {
		text := string(data)
		doc.ExtractedText = &text
	}

	if err := s.store.Create(ctx, doc); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to remove orphaned upload", "key", key, "error", delErr)
		}
		return nil, err
	}
	return doc, nil
}
