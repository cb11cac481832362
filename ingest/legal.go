// Package ingest turns scraped JSONL into the records and embedding texts of
// the two search corpora.
package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"themisai-backend/models"
)

const (
	DefaultMaxWords   = 450
	DefaultOverlap    = 80
	MinWindowWords    = 50
	baseIDPrefixRunes = 200
)

var pasalPattern = regexp.MustCompile(`(?i)Pasal\s+\d+[A-Za-z]?`)

// ChunkOptions controls the whitespace window chunker
type ChunkOptions struct {
	Disabled bool // store each document as one chunk
	MaxWords int
	Overlap  int
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultMaxWords
	}
	if o.Overlap < 0 || o.Overlap >= o.MaxWords {
		o.Overlap = 0
	}
	return o
}

// SourceDocument is one line of the legal corpus input
type SourceDocument struct {
	ID           string             `json:"id"`
	Text         string             `json:"text"`
	Content      string             `json:"content"`
	Title        models.LooseString `json:"title"`
	URL          models.LooseString `json:"url"`
	DocType      models.LooseString `json:"doc_type"`
	Number       models.LooseString `json:"number"`
	Year         models.LooseString `json:"year"`
	Level        models.LooseString `json:"level"`
	CaseNumber   models.LooseString `json:"case_number"`
	DecisionDate models.LooseString `json:"decision_date"`
	Court        models.LooseString `json:"court"`
	Subject      models.LooseString `json:"subject"`
	Source       models.LooseString `json:"source"`
}

// ParseSourceDocument decodes a line. Lines that are not JSON become plain text documents.
func ParseSourceDocument(line []byte) SourceDocument {
	var doc SourceDocument
	if err := json.Unmarshal(line, &doc); err != nil {
		return SourceDocument{Text: strings.TrimSpace(string(line))}
	}
	return doc
}

// CleanText removes NUL bytes and collapses whitespace
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\x00", " ")
	return strings.Join(strings.Fields(s), " ")
}

// SplitLegalBlocks splits text before every "Pasal N" heading.
// Text without headings is returned as a single block.
func SplitLegalBlocks(text string) []string {
	locs := pasalPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	blocks := make([]string, 0, len(locs)+1)
	blocks = append(blocks, text[:locs[0][0]])
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, text[loc[0]:end])
	}
	return blocks
}

// ChunkWords emits overlapping windows of whitespace-separated words.
// Emission stops at the first window shorter than MinWindowWords.
func ChunkWords(text string, maxWords, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := maxWords - overlap
	if step <= 0 {
		step = maxWords
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := min(i+maxWords, len(words))
		if end-i < MinWindowWords {
			break
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// LegalRecords converts a source document into chunk records sharing one document id
func LegalRecords(doc SourceDocument, opts ChunkOptions) []models.LegalChunk {
	opts = opts.withDefaults()

	text := doc.Text
	if text == "" {
		text = doc.Content
	}
	text = CleanText(text)
	if text == "" {
		return nil
	}

	base := models.LegalChunk{
		ID:           doc.ID,
		Title:        doc.Title.String(),
		URL:          doc.URL.String(),
		DocType:      doc.DocType.String(),
		Number:       doc.Number,
		Year:         doc.Year,
		Level:        doc.Level.String(),
		CaseNumber:   doc.CaseNumber.String(),
		DecisionDate: doc.DecisionDate.String(),
		Court:        doc.Court.String(),
		Subject:      doc.Subject.String(),
		Source:       doc.Source.String(),
	}
	if base.ID == "" {
		base.ID = documentID(base.Title, base.URL, text)
	}

	if opts.Disabled {
		base.ChunkID = chunkID(1)
		base.Text = text
		return []models.LegalChunk{base}
	}

	var windows []string
	for _, block := range SplitLegalBlocks(text) {
		windows = append(windows, ChunkWords(block, opts.MaxWords, opts.Overlap)...)
	}

	records := make([]models.LegalChunk, 0, len(windows))
	for i, w := range windows {
		rec := base
		rec.ChunkID = chunkID(i + 1)
		rec.Text = w
		records = append(records, rec)
	}
	return records
}

// Dedup keeps the first record of every case-insensitive text
func Dedup(records []models.LegalChunk) []models.LegalChunk {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := sha1Hex(strings.ToLower(r.Text))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func documentID(title, url, text string) string {
	prefix := text
	if runes := []rune(text); len(runes) > baseIDPrefixRunes {
		prefix = string(runes[:baseIDPrefixRunes])
	}
	return sha1Hex(title + url + prefix)
}

func chunkID(n int) string {
	return fmt.Sprintf("%04d", n)
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
