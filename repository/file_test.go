package repository

import (
	"strings"
	"testing"
)

func matchesDocumentPatterns(mimeType string) bool {
	lower := strings.ToLower(mimeType)
	for _, p := range documentMimePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func TestDocumentMimePatterns(t *testing.T) {
	documents := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"text/plain",
		"text/csv",
		"APPLICATION/PDF", // case-insensitive
	}
	for _, mime := range documents {
		if !matchesDocumentPatterns(mime) {
			t.Errorf("expected %q to match the document pattern group", mime)
		}
	}

	nonDocuments := []string{
		"image/png",
		"video/mp4",
		"audio/mpeg",
		"application/zip",
		"application/x-rar-compressed",
	}
	for _, mime := range nonDocuments {
		if matchesDocumentPatterns(mime) {
			t.Errorf("expected %q not to match the document pattern group", mime)
		}
	}
}
