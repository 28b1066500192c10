package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fileshare-io/fileshare-api/entity"
	"github.com/fileshare-io/fileshare-api/utils"
)

// SignedURLExpiry is the validity window of a minted download URL.
const SignedURLExpiry = 600 * time.Second

// uploadNamespace is the logical folder every blob lands under.
const uploadNamespace = "uploads"

// FileRepository is the metadata store surface the service depends on.
type FileRepository interface {
	Create(file *entity.File) error
	FindByID(id uuid.UUID) (*entity.File, error)
	FindByOwnerID(ownerID uuid.UUID) ([]entity.File, error)
	FindByOwnerIDAndType(ownerID uuid.UUID, typeFilter string) ([]entity.File, error)
	Delete(id uuid.UUID) error
}

// BlobStore is the object storage surface the service depends on.
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (etag string, err error)
	PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
	ObjectURL(key string) string
	Bucket() string
}

// EventPublisher emits blob cleanup jobs for out-of-process reconciliation.
type EventPublisher interface {
	PublishCleanup(ctx context.Context, storageKey, resourceKind, reason string) error
}

// UploadResult is returned after a successful upload.
type UploadResult struct {
	ID       uuid.UUID `json:"id"`
	ShareURL string    `json:"shareUrl"`
	FileName string    `json:"fileName"`
}

// FileInfo is the public payload for a retrieval by id.
type FileInfo struct {
	File        *entity.File
	DownloadURL string
}

// FileService holds the upload, retrieval, listing and deletion orchestrators.
type FileService struct {
	repo    FileRepository
	store   BlobStore
	events  EventPublisher
	logger  *slog.Logger
	baseURL string
}

func NewFileService(repo FileRepository, store BlobStore, events EventPublisher, logger *slog.Logger, baseURL string) *FileService {
	return &FileService{
		repo:    repo,
		store:   store,
		events:  events,
		logger:  logger,
		baseURL: baseURL,
	}
}

// canModify is the capability check gating destructive operations. Richer
// policies (sharing, admin override) substitute here without touching call
// sites.
func canModify(callerID uuid.UUID, file *entity.File) bool {
	return file.OwnerID == callerID
}

// Upload validates an incoming file against schema, allow-list and quota
// rules, pushes the bytes to the blob store and persists the metadata
// record. The quota check is read-then-act: two concurrent uploads from one
// owner can both pass it, so the 3 GiB ceiling is a soft limit.
func (s *FileService) Upload(ctx context.Context, ownerID uuid.UUID, fileName string, fileSize int64, mimeType string, content io.Reader) (*UploadResult, error) {
	var details []string
	if len(fileName) < 1 || len(fileName) > 255 {
		details = append(details, "fileName must be between 1 and 255 characters")
	}
	if fileSize <= 0 {
		details = append(details, "fileSize must be positive")
	}
	if fileSize > utils.MaxFileSizeBytes {
		details = append(details, fmt.Sprintf("fileSize must not exceed %s", utils.FormatBytes(utils.MaxFileSizeBytes)))
	}
	if mimeType == "" {
		details = append(details, "mimeType must not be empty")
	}
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	if !utils.IsAllowedFileType(mimeType) {
		return nil, ErrUnsupportedType
	}

	// Quota usage is recomputed on every upload, never cached.
	existing, err := s.repo.FindByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner files: %w", err)
	}
	if utils.IsStorageLimitExceeded(utils.CalculateTotalStorage(existing) + fileSize) {
		return nil, ErrQuotaExceeded
	}

	resourceKind := resourceKindFromMime(mimeType)

	id := uuid.New()
	storageKey := buildStorageKey(id, fileName)

	etag, err := s.store.Upload(ctx, storageKey, content, fileSize, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload blob: %w", err)
	}

	metadata, _ := json.Marshal(map[string]string{
		"etag":   etag,
		"bucket": s.store.Bucket(),
	})

	record := &entity.File{
		ID:           id,
		FileName:     fileName,
		FileSize:     fileSize,
		MimeType:     mimeType,
		StorageKey:   storageKey,
		StorageURL:   s.store.ObjectURL(storageKey),
		ResourceKind: resourceKind,
		OwnerID:      ownerID,
		Metadata:     datatypes.JSON(metadata),
	}

	if err := s.repo.Create(record); err != nil {
		// The blob is already stored; hand it to the reconciliation queue
		// so the external sweeper can remove it.
		if pubErr := s.events.PublishCleanup(ctx, storageKey, resourceKind, "metadata write failed after upload"); pubErr != nil {
			s.logger.ErrorContext(ctx, "failed to publish orphaned blob cleanup",
				slog.String("storage_key", storageKey), slog.String("error", pubErr.Error()))
		}
		return nil, fmt.Errorf("failed to persist file record: %w", err)
	}

	return &UploadResult{
		ID:       record.ID,
		ShareURL: utils.BuildPublicFileURL(s.baseURL, record.ID.String()),
		FileName: record.FileName,
	}, nil
}

// Get looks up a record by id and mints a fresh signed download URL.
// No ownership check: anyone holding the id may retrieve it.
func (s *FileService) Get(ctx context.Context, id uuid.UUID) (*FileInfo, error) {
	file, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load file record: %w", err)
	}

	downloadURL, err := s.store.PresignedGetURL(ctx, file.StorageKey, SignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download url: %w", err)
	}

	return &FileInfo{File: file, DownloadURL: downloadURL}, nil
}

// List returns the caller's files, newest first, optionally constrained by
// a type filter. Unknown filter values behave like "all".
func (s *FileService) List(ctx context.Context, ownerID uuid.UUID, typeFilter string) ([]entity.File, error) {
	if typeFilter == "" {
		typeFilter = "all"
	}

	files, err := s.repo.FindByOwnerIDAndType(ownerID, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// Delete removes a file the caller owns. The blob delete is best-effort:
// a storage-side failure is logged and queued for reconciliation, and the
// metadata record is removed regardless, so the user-visible file always
// disappears.
func (s *FileService) Delete(ctx context.Context, callerID, id uuid.UUID) (string, error) {
	file, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load file record: %w", err)
	}

	if !canModify(callerID, file) {
		return "", ErrForbidden
	}

	if err := s.store.Remove(ctx, file.StorageKey); err != nil {
		s.logger.WarnContext(ctx, "blob delete failed, continuing with metadata delete",
			slog.String("storage_key", file.StorageKey), slog.String("error", err.Error()))
		if pubErr := s.events.PublishCleanup(ctx, file.StorageKey, file.ResourceKind, "remote delete failed"); pubErr != nil {
			s.logger.ErrorContext(ctx, "failed to publish blob cleanup",
				slog.String("storage_key", file.StorageKey), slog.String("error", pubErr.Error()))
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return "", fmt.Errorf("failed to delete file record: %w", err)
	}

	return file.FileName, nil
}

func resourceKindFromMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return entity.ResourceKindImage
	case strings.HasPrefix(mimeType, "video/"):
		return entity.ResourceKindVideo
	default:
		return entity.ResourceKindRaw
	}
}

func buildStorageKey(id uuid.UUID, fileName string) string {
	return fmt.Sprintf("%s/%s%s", uploadNamespace, id, path.Ext(fileName))
}
