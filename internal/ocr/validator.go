package ocr

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadSize caps a single menu photo.
const MaxUploadSize = 10 << 20

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return fmt.Errorf("%w: file extension missing", ErrInvalidFile)
	}

	if !allowedExt[ext] {
		return fmt.Errorf("%w: file type %s not allowed", ErrInvalidFile, ext)
	}

	return nil
}

// IsPDF sniffs the PDF magic bytes; a renamed PDF passes the extension check.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}
