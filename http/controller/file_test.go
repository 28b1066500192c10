package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fileshare-io/fileshare-api/config"
	"github.com/fileshare-io/fileshare-api/entity"
	"github.com/fileshare-io/fileshare-api/infra"
	"github.com/fileshare-io/fileshare-api/repository"
	"github.com/fileshare-io/fileshare-api/service"
)

// In-memory implementations of the service dependencies.

type memRepo struct {
	files map[uuid.UUID]entity.File
}

func (r *memRepo) Create(file *entity.File) error {
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	r.files[file.ID] = *file
	return nil
}

func (r *memRepo) FindByID(id uuid.UUID) (*entity.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (r *memRepo) FindByOwnerID(ownerID uuid.UUID) ([]entity.File, error) {
	var out []entity.File
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memRepo) FindByOwnerIDAndType(ownerID uuid.UUID, _ string) ([]entity.File, error) {
	return r.FindByOwnerID(ownerID)
}

func (r *memRepo) Delete(id uuid.UUID) error {
	delete(r.files, id)
	return nil
}

type memStore struct{}

func (memStore) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return "etag-" + key, nil
}

func (memStore) PresignedGetURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://cdn.test/%s?expires=%d", key, int(expiry.Seconds())), nil
}

func (memStore) Remove(context.Context, string) error { return nil }
func (memStore) ObjectURL(key string) string          { return "https://cdn.test/fileshare/" + key }
func (memStore) Bucket() string                       { return "fileshare" }

type memEvents struct{}

func (memEvents) PublishCleanup(context.Context, string, string, string) error { return nil }

func newTestRouter(t *testing.T, owner uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	files := service.NewFileService(
		&memRepo{files: make(map[uuid.UUID]entity.File)},
		memStore{}, memEvents{}, logger, "http://localhost:8080",
	)

	ctrl := NewController(
		&config.Config{EnvConfig: &config.EnvConfig{}},
		&infra.Infra{Logger: &infra.LoggerClient{Logger: logger}},
		&repository.Repository{},
		files,
	)

	injectUser := func(c *gin.Context) {
		c.Set("user_id", owner.String())
		c.Next()
	}

	r := gin.New()
	r.GET("/api/file", ctrl.GetFile)
	r.POST("/api/upload", injectUser, ctrl.UploadFile)
	r.GET("/api/files", injectUser, ctrl.ListFiles)
	r.DELETE("/api/delete", injectUser, ctrl.DeleteFile)
	return r
}

func multipartFile(t *testing.T, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write multipart content: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestFileLifecycleOverHTTP(t *testing.T) {
	owner := uuid.New()
	router := newTestRouter(t, owner)

	// Upload a 10-byte text file
	body, contentType := multipartFile(t, "a.txt", "text/plain", []byte("0123456789"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var uploaded struct {
		ID       string `json:"id"`
		ShareURL string `json:"shareUrl"`
		FileName string `json:"fileName"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("invalid upload response: %v", err)
	}
	if uploaded.FileName != "a.txt" {
		t.Errorf("expected fileName a.txt, got %q", uploaded.FileName)
	}
	wantSuffix := "/file/" + uploaded.ID
	if len(uploaded.ShareURL) < len(wantSuffix) || uploaded.ShareURL[len(uploaded.ShareURL)-len(wantSuffix):] != wantSuffix {
		t.Errorf("share url %q must end in %q", uploaded.ShareURL, wantSuffix)
	}

	// Public retrieval mints a download URL
	req = httptest.NewRequest(http.MethodGet, "/api/file?id="+uploaded.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		FileName    string `json:"fileName"`
		DownloadURL string `json:"downloadUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid file response: %v", err)
	}
	if got.FileName != "a.txt" || got.DownloadURL == "" {
		t.Errorf("expected fileName and downloadUrl, got %+v", got)
	}

	// Owner deletes
	req = httptest.NewRequest(http.MethodDelete, "/api/delete?id="+uploaded.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Repeat retrieval now 404s
	req = httptest.NewRequest(http.MethodGet, "/api/file?id="+uploaded.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after deletion, got %d", rec.Code)
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	body, contentType := multipartFile(t, "tool.exe", "application/x-msdownload", []byte("MZ"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error response: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error field must be populated")
	}
}

func TestGetFileParamValidation(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/api/file", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing id: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/file?id=not-a-uuid", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed id: expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/file?id="+uuid.NewString(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", rec.Code)
	}
}

func TestListFilesResponseShape(t *testing.T) {
	owner := uuid.New()
	router := newTestRouter(t, owner)

	body, contentType := multipartFile(t, "a.txt", "text/plain", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed upload failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/files?type=all", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Files []entity.File `json:"files"`
		Count int           `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid list response: %v", err)
	}
	if resp.Count != 1 || len(resp.Files) != 1 {
		t.Errorf("expected one file, got count=%d len=%d", resp.Count, len(resp.Files))
	}
}
