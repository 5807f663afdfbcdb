package handlers

import (
	"context"
	"mime/multipart"

	"github.com/MaryEddythe/Lustrea/internal/httperr"
	"github.com/MaryEddythe/Lustrea/internal/infra/storage"
)

// storeImage validates and stores one uploaded image, returning the
// reference to persist on the record.
func storeImage(
	ctx context.Context,
	uploader storage.Uploader,
	fh *multipart.FileHeader,
	prefix string,
) (string, error) {

	if fh.Size > storage.MaxUploadBytes {
		return "", httperr.ErrBusiness("file_too_large")
	}

	contentType := fh.Header.Get("Content-Type")
	if !storage.IsImageContentType(contentType) {
		return "", httperr.ErrBusiness("not_an_image")
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return uploader.Put(ctx, storage.UploadInput{
		Prefix:      prefix,
		Filename:    fh.Filename,
		ContentType: contentType,
		Body:        f,
	})
}
