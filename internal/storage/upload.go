package storage

import (
	"context"
	"mime/multipart"
)

// UploadMultipartFile streams an uploaded form file into store under key and
// returns its URL.
func UploadMultipartFile(ctx context.Context, store Store, key string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return store.Upload(ctx, key, f, file.Header.Get("Content-Type"))
}
