package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"themisai-backend/models"
)

const (
	// TruncationMarker ends any context that was cut to fit its budget
	TruncationMarker = "\n\n...[konteks dipotong]"

	// NoContextText stands in for an empty retrieval result
	NoContextText = "Tidak ditemukan konteks hukum yang relevan."

	userDocumentsHeader = "[DOKUMEN PENGGUNA]"

	DefaultContextMaxChars  = 16000
	DefaultDocumentMaxChars = 8000
)

// noContextChunk keeps the generator input well-formed when nothing was retrieved
var noContextChunk = models.LegalChunk{Text: NoContextText, Title: "—", DocType: "—"}

// AssembledContext is the bounded input of the generation step
type AssembledContext struct {
	Context   string
	Sources   string
	Truncated bool
}

// ContextAssembler merges retrieved chunks and user documents under character budgets
type ContextAssembler struct {
	MaxChars         int
	DocumentMaxChars int
}

// NewContextAssembler falls back to the default budgets for non-positive values
func NewContextAssembler(maxChars, documentMaxChars int) ContextAssembler {
	if maxChars <= 0 {
		maxChars = DefaultContextMaxChars
	}
	if documentMaxChars <= 0 {
		documentMaxChars = DefaultDocumentMaxChars
	}
	return ContextAssembler{MaxChars: maxChars, DocumentMaxChars: documentMaxChars}
}

// Assemble renders "[rank] (doc_type) text" blocks and "[S<rank>] title — url" sources.
// Documents are appended under their own header. Budgets count runes and include the marker.
func (a ContextAssembler) Assemble(chunks []models.LegalChunk, documents string) AssembledContext {
	if len(chunks) == 0 {
		chunks = []models.LegalChunk{noContextChunk}
	}

	blocks := make([]string, 0, len(chunks))
	sources := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		rank := i + 1
		blocks = append(blocks, fmt.Sprintf("[%d] (%s) %s", rank, chunk.DocType, chunk.Text))
		sources = append(sources, fmt.Sprintf("[S%d] %s — %s", rank, chunk.Title, chunk.URL))
	}

	text := strings.Join(blocks, "\n\n")
	var docTruncated bool
	if documents = strings.TrimSpace(documents); documents != "" {
		documents, docTruncated = truncateRunes(documents, a.DocumentMaxChars)
		text += "\n\n" + userDocumentsHeader + "\n" + documents
	}

	text, truncated := truncateRunes(text, a.MaxChars)
	return AssembledContext{
		Context:   text,
		Sources:   strings.Join(sources, "\n"),
		Truncated: truncated || docTruncated,
	}
}

// truncateRunes cuts s so that the result, marker included, has at most limit runes
func truncateRunes(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	marker := []rune(TruncationMarker)
	if limit <= len(marker) {
		// budget too small for any text: the marker is cut to fit
		return string(marker[:max(limit, 0)]), true
	}
	runes := []rune(s)
	return string(runes[:limit-len(marker)]) + TruncationMarker, true
}
