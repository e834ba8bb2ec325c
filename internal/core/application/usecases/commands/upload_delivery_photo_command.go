package commands

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUploadDeliveryPhotoCommandIsNotConstructed = errors.New(
	"UploadDeliveryPhotoCommand must be created via NewUploadDeliveryPhotoCommand constructor",
)

// UploadDeliveryPhotoCommand carries the courier's photo. The content is read
// once by the handler.
type UploadDeliveryPhotoCommand struct { //nolint:recvcheck //using for validation
	token    string
	filename string
	content  io.Reader
	guard    guard.ConstructorGuard
}

func NewUploadDeliveryPhotoCommand(token, filename string, content io.Reader) (UploadDeliveryPhotoCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return UploadDeliveryPhotoCommand{}, err
	}
	if content == nil {
		return UploadDeliveryPhotoCommand{}, errs.NewValueIsRequiredError("photo")
	}
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == "/" || name == "" {
		name = "photo.jpg"
	}
	return UploadDeliveryPhotoCommand{
		token:    token,
		filename: name,
		content:  content,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UploadDeliveryPhotoCommand) Validate() error {
	return c.guard.Validate(ErrUploadDeliveryPhotoCommandIsNotConstructed)
}

func (c UploadDeliveryPhotoCommand) Token() string      { return c.token }
func (c UploadDeliveryPhotoCommand) Filename() string   { return c.filename }
func (c UploadDeliveryPhotoCommand) Content() io.Reader { return c.content }
