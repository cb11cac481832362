package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"themisai-backend/logger"
	"themisai-backend/models"
	"themisai-backend/service"

	"github.com/gin-gonic/gin"
)

// DocumentUploader stores an uploaded document and records it
type DocumentUploader interface {
	Upload(ctx context.Context, req service.UploadDocumentRequest) (*models.Document, error)
}

// DocumentHandler handles HTTP requests for user documents
type DocumentHandler struct {
	uploader    DocumentUploader
	maxFileSize int64
	logger      logger.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(uploader DocumentUploader, l logger.Logger) *DocumentHandler {
	if l == nil {
		l = logger.Default()
	}
	return &DocumentHandler{
		uploader:    uploader,
		maxFileSize: 10 * 1024 * 1024, // 10MB
		logger:      l,
	}
}

var allowedDocTypes = map[models.DocType]bool{
	models.DocTypeStatute:    true,
	models.DocTypeCaseLaw:    true,
	models.DocTypeRegulation: true,
	models.DocTypeOther:      true,
}

// Upload handles POST /api/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	docType := models.DocType(strings.TrimSpace(c.PostForm("doc_type")))
	if docType == "" {
		docType = models.DocTypeOther
	}
	if !allowedDocTypes[docType] {
		respondError(c, http.StatusBadRequest, "INVALID_DOC_TYPE", "doc_type must be statute, case_law, regulation or other")
		return
	}

	var title *string
	if t := strings.TrimSpace(c.PostForm("title")); t != "" {
		title = &t
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", "Failed to read uploaded file")
		return
	}
	defer file.Close()

	doc, err := h.uploader.Upload(c.Request.Context(), service.UploadDocumentRequest{
		Filename: fileHeader.Filename,
		Title:    title,
		DocType:  docType,
		Content:  file,
	})
	if err != nil {
		h.logger.Error("document upload failed", "filename", fileHeader.Filename, "error", err)
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store document")
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"id":          doc.ID,
		"path":        doc.Path,
		"doc_type":    doc.DocType,
		"title":       doc.Title,
		"has_text":    doc.ExtractedText != nil,
		"uploaded_at": doc.UploadedAt,
	})
}
