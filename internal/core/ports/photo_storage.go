package ports

import (
	"context"
	"io"
)

// PhotoStorage keeps courier photos and returns a reference stored on the order.
type PhotoStorage interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}
