package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/menyesha/complaint-service/internal/config"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// Store persists uploaded files on local disk under the configured base
// directory; id cards at the root, evidence under the complaints subdir.
// Generated names are unique under concurrent uploads.
type Store struct {
	cfg config.UploadConfig
}

// NewStore prepares the upload directories.
func NewStore(cfg config.UploadConfig) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(cfg.BaseDir, cfg.ComplaintsSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dirs: %w", err)
	}
	return &Store{cfg: cfg}, nil
}

// SaveIDCard stores a registration identity document and returns the
// generated filename.
func (s *Store) SaveIDCard(file *multipart.FileHeader) (string, error) {
	if err := validateImage(file, s.cfg.MaxIDCardBytes); err != nil {
		return "", err
	}
	name := generateFilename("id-card", file.Filename)
	if err := s.write(file, filepath.Join(s.cfg.BaseDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// SaveEvidence stores up to MaxEvidenceFiles complaint images and returns
// the generated filenames in upload order.
func (s *Store) SaveEvidence(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > s.cfg.MaxEvidenceFiles {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("at most %d evidence images allowed", s.cfg.MaxEvidenceFiles), nil)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if err := validateImage(file, s.cfg.MaxEvidenceBytes); err != nil {
			return nil, err
		}
		name := generateFilename("evidence", file.Filename)
		if err := s.write(file, filepath.Join(s.cfg.BaseDir, s.cfg.ComplaintsSubdir, name)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// BaseDir exposes the root for static serving.
func (s *Store) BaseDir() string {
	return s.cfg.BaseDir
}

func (s *Store) write(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func validateImage(file *multipart.FileHeader, maxBytes int64) error {
	if file.Size > maxBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("file %s exceeds the %d byte limit", file.Filename, maxBytes), nil)
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewValidationError("Only image files are allowed", nil)
	}
	return nil
}

// generateFilename produces "<prefix>-<unix millis>-<random><ext>", keeping
// the original extension.
func generateFilename(prefix, original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixMilli(), suffix, strings.ToLower(filepath.Ext(original)))
}
