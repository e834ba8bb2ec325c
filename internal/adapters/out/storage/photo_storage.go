// Package storage keeps uploaded delivery photos on the local filesystem.
package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const (
	PhotoDir             = "delivery_photos"
	DefaultMaxPhotoBytes = 10 << 20
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

var _ ports.PhotoStorage = &LocalPhotoStorage{}

// LocalPhotoStorage writes photos under root/delivery_photos and returns
// references relative to root, e.g. "delivery_photos/order_7_photo.jpg".
type LocalPhotoStorage struct {
	root     string
	maxBytes int64
}

func NewLocalPhotoStorage(root string, maxBytes int64) (*LocalPhotoStorage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errs.NewValueIsRequiredError("media root")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}
	if err := os.MkdirAll(filepath.Join(root, PhotoDir), 0o755); err != nil {
		return nil, err
	}
	return &LocalPhotoStorage{root: root, maxBytes: maxBytes}, nil
}

func (s *LocalPhotoStorage) Root() string { return s.root }

func (s *LocalPhotoStorage) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = SanitizeName(name)

	tmp, err := os.CreateTemp(filepath.Join(s.root, PhotoDir), ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful link

	n, err := io.Copy(tmp, io.LimitReader(content, s.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", errs.NewValueIsRequiredError("photo")
	}
	if n > s.maxBytes {
		return "", errs.NewValueIsOutOfRangeError("photo size", n, 1, s.maxBytes)
	}

	ref := path.Join(PhotoDir, name)
	if err := os.Link(tmp.Name(), filepath.Join(s.root, filepath.FromSlash(ref))); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		ref = path.Join(PhotoDir, kernel.NewUUID().String()[:8]+"_"+name)
		if err := os.Link(tmp.Name(), filepath.Join(s.root, filepath.FromSlash(ref))); err != nil {
			return "", err
		}
	}
	return ref, nil
}

// Delete removes a photo saved under ref. A missing file is not an error.
func (s *LocalPhotoStorage) Delete(_ context.Context, ref string) error {
	ref = path.Clean("/" + filepath.ToSlash(ref))[1:]
	if path.Dir(ref) != PhotoDir {
		return errs.NewValueIsInvalidError("photo reference")
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// SanitizeName keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func SanitizeName(name string) string {
	name = path.Base(filepath.ToSlash(strings.TrimSpace(name)))
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return "photo.jpg"
	}
	return name
}
