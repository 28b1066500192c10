package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Valid resource kinds. The kind decides how the storage provider serves
// the blob (image and video get media handling, raw is generic binary).
const (
	ResourceKindImage = "image"
	ResourceKindVideo = "video"
	ResourceKindRaw   = "raw"
	ResourceKindAuto  = "auto"
)

// File is the metadata record for one uploaded file. The blob itself lives
// in the object store under StorageKey; this row only describes it.
type File struct {
	ID           uuid.UUID      `json:"_id" gorm:"type:uuid;primaryKey"`
	FileName     string         `json:"fileName" gorm:"type:varchar(255);not null"`
	FileSize     int64          `json:"fileSize" gorm:"not null"`
	MimeType     string         `json:"mimeType" gorm:"type:varchar(255);not null"`
	StorageKey   string         `json:"storageKey" gorm:"type:varchar(1024);not null"`
	StorageURL   string         `json:"storageUrl" gorm:"type:varchar(1024);not null"`
	ResourceKind string         `json:"resourceKind" gorm:"type:varchar(16);not null"`
	OwnerID      uuid.UUID      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"not null;autoCreateTime;index"`
}
