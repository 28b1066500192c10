package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fileshare-io/fileshare-api/entity"
)

// Type filter values accepted by the listing query.
const (
	TypeFilterAll      = "all"
	TypeFilterImage    = "image"
	TypeFilterVideo    = "video"
	TypeFilterAudio    = "audio"
	TypeFilterDocument = "document"
)

// documentMimePatterns is the substring group that qualifies a MIME type as
// a document for listing purposes (matched case-insensitively).
var documentMimePatterns = []string{"pdf", "document", "word", "text", "excel", "sheet"}

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(file *entity.File) error {
	return r.db.Create(file).Error
}

func (r *FileRepository) FindByID(id uuid.UUID) (*entity.File, error) {
	var file entity.File
	err := r.db.Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) FindByOwnerID(ownerID uuid.UUID) ([]entity.File, error) {
	var files []entity.File
	err := r.db.Where("owner_id = ?", ownerID).Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// FindByOwnerIDAndType lists an owner's files newest-first, constrained by
// the given type filter. Unknown filter values behave like "all".
func (r *FileRepository) FindByOwnerIDAndType(ownerID uuid.UUID, typeFilter string) ([]entity.File, error) {
	var files []entity.File
	q := applyTypeFilter(r.db.Where("owner_id = ?", ownerID), typeFilter)
	err := q.Order("created_at DESC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// applyTypeFilter is the closed set of predicate builders for the listing
// filter enum. Each value maps to exactly one predicate; anything else adds
// no constraint.
func applyTypeFilter(q *gorm.DB, typeFilter string) *gorm.DB {
	switch typeFilter {
	case TypeFilterImage:
		return q.Where("mime_type LIKE ?", "image/%")
	case TypeFilterVideo:
		return q.Where("mime_type LIKE ?", "video/%")
	case TypeFilterAudio:
		return q.Where("mime_type LIKE ?", "audio/%")
	case TypeFilterDocument:
		cond := ""
		args := make([]interface{}, 0, len(documentMimePatterns))
		for i, p := range documentMimePatterns {
			if i > 0 {
				cond += " OR "
			}
			cond += "mime_type ILIKE ?"
			args = append(args, "%"+p+"%")
		}
		return q.Where(cond, args...)
	default:
		return q
	}
}

func (r *FileRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entity.File{}, "id = ?", id).Error
}
