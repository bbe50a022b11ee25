package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
	"go.uber.org/zap"
)

// DefaultMaxReceiptSize bounds how much of a receipt is loaded in memory
const DefaultMaxReceiptSize = 10 << 20

// ErrReceiptTooLarge is returned when a receipt exceeds the configured size
var ErrReceiptTooLarge = errors.New("receipt file too large")

// ReceiptReader loads receipt files from disk and sniffs their media type
// from content, not from the file extension.
type ReceiptReader struct {
	baseDir string
	maxSize int64
	logger  *zap.Logger
}

// NewReceiptReader creates a reader. Relative paths are resolved against
// baseDir and may not leave it; an empty baseDir accepts any path.
func NewReceiptReader(baseDir string, maxSize int64, logger *zap.Logger) *ReceiptReader {
	if maxSize <= 0 {
		maxSize = DefaultMaxReceiptSize
	}
	return &ReceiptReader{
		baseDir: baseDir,
		maxSize: maxSize,
		logger:  logger,
	}
}

// Read loads the file at path as a receipt selection
func (r *ReceiptReader) Read(ctx context.Context, path string) (*entity.ReceiptFile, error) {
	fullPath, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		r.logger.Error("Failed to stat receipt", zap.String("path", fullPath), zap.Error(err))
		return nil, fmt.Errorf("failed to open receipt: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("receipt path is a directory: %s", fullPath)
	}
	if info.Size() > r.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrReceiptTooLarge, info.Size())
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		r.logger.Error("Failed to read receipt", zap.String("path", fullPath), zap.Error(err))
		return nil, fmt.Errorf("failed to read receipt: %w", err)
	}

	mtype := mimetype.Detect(content)
	r.logger.Debug("Receipt loaded",
		zap.String("path", fullPath),
		zap.String("media_type", mtype.String()),
		zap.Int("size", len(content)))

	return &entity.ReceiptFile{
		Name:      filepath.Base(fullPath),
		MediaType: baseMediaType(mtype.String()),
		Content:   content,
	}, nil
}

func (r *ReceiptReader) resolve(path string) (string, error) {
	if r.baseDir == "" {
		return filepath.Clean(path), nil
	}
	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(r.baseDir, path)
	}
	if err := validatePath(r.baseDir, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

// validatePath checks that fullPath stays within baseDir
func validatePath(baseDir, fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}
	return nil
}

// baseMediaType drops parameters such as "; charset=utf-8"
func baseMediaType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

var _ port.ReceiptReader = (*ReceiptReader)(nil)
