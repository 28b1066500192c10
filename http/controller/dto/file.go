package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fileshare-io/fileshare-api/entity"
)

type UploadResponseDTO struct {
	ID       uuid.UUID `json:"id"`
	ShareURL string    `json:"shareUrl"`
	FileName string    `json:"fileName"`
	Message  string    `json:"message"`
}

type FileResponseDTO struct {
	ID           uuid.UUID `json:"_id"`
	FileName     string    `json:"fileName"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	StorageURL   string    `json:"storageUrl"`
	ResourceKind string    `json:"resourceKind"`
	CreatedAt    time.Time `json:"createdAt"`
	DownloadURL  string    `json:"downloadUrl"`
}

type ListFilesResponseDTO struct {
	Files []entity.File `json:"files"`
	Count int           `json:"count"`
}

type DeleteResponseDTO struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
}
