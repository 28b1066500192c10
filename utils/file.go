package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fileshare-io/fileshare-api/entity"
)

const (
	// MaxFileSizeBytes is the largest accepted upload (100 MiB).
	MaxFileSizeBytes int64 = 100 * 1024 * 1024
	// MaxStorageBytes is the per-owner storage ceiling (3 GiB).
	MaxStorageBytes int64 = 3 * 1024 * 1024 * 1024
)

// allowedMimeTypes is the fixed upload allow-list. Anything outside it is
// rejected even when GetFileTypeFromMime would categorize it.
var allowedMimeTypes = map[string]bool{
	// Images
	"image/jpeg": true, "image/jpg": true, "image/png": true,
	"image/gif": true, "image/webp": true, "image/svg+xml": true,
	// Documents
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"text/plain": true, "text/csv": true,
	// Audio
	"audio/mpeg": true, "audio/mp3": true, "audio/wav": true,
	"audio/ogg": true, "audio/webm": true,
	// Video
	"video/mp4": true, "video/mpeg": true, "video/quicktime": true,
	"video/x-msvideo": true, "video/webm": true,
	// Archives
	"application/zip": true, "application/x-zip-compressed": true,
	"application/x-rar-compressed": true,
}

// IsAllowedFileType reports whether the MIME type is on the upload allow-list.
func IsAllowedFileType(mimeType string) bool {
	return allowedMimeTypes[mimeType]
}

// GetFileTypeFromMime maps a MIME type to a display category.
// Prefix checks run first, then the document and archive substring groups;
// "file" is the catch-all.
func GetFileTypeFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "image"
	case strings.HasPrefix(mimeType, "video/"):
		return "video"
	case strings.HasPrefix(mimeType, "audio/"):
		return "audio"
	case strings.Contains(mimeType, "pdf"),
		strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "word"),
		strings.Contains(mimeType, "text"):
		return "document"
	case strings.Contains(mimeType, "zip"),
		strings.Contains(mimeType, "rar"),
		strings.Contains(mimeType, "archive"):
		return "archive"
	default:
		return "file"
	}
}

// FormatBytes renders a byte count with base-1024 scaling, rounded to at
// most two decimal places ("1.5 KB", "3 GB"). Caller guarantees n >= 0.
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := math.Round(float64(n)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizes[i]
}

// CalculateTotalStorage sums the sizes of all given records.
func CalculateTotalStorage(files []entity.File) int64 {
	var total int64
	for _, f := range files {
		total += f.FileSize
	}
	return total
}

// IsStorageLimitExceeded reports whether totalBytes meets or exceeds the
// per-owner quota. The comparison is >=, so a total that exactly fills the
// quota is already over it.
func IsStorageLimitExceeded(totalBytes int64) bool {
	return totalBytes >= MaxStorageBytes
}

// BuildPublicFileURL builds the shareable link for a file id.
func BuildPublicFileURL(baseURL, fileID string) string {
	return fmt.Sprintf("%s/file/%s", strings.TrimSuffix(baseURL, "/"), fileID)
}
