package port

import (
	"context"

	"github.com/garyjia/billed/internal/domain/entity"
)

// KeyValueStore is the persisted-session storage primitive
type KeyValueStore interface {
	// GetItem returns the value stored under key; ok is false when absent
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	Clear() error
}

// ReceiptReader loads a receipt file selected by the user
type ReceiptReader interface {
	Read(ctx context.Context, path string) (*entity.ReceiptFile, error)
}

// BillExporter writes a dashboard snapshot to a file
type BillExporter interface {
	Export(ctx context.Context, groups []entity.StatusGroup, outputPath string) error
}
