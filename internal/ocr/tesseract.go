package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// TesseractExtractor shells out to the tesseract CLI.
type TesseractExtractor struct {
	bin string
}

func NewTesseractExtractor(bin string) *TesseractExtractor {
	if bin == "" {
		bin = "tesseract"
	}
	return &TesseractExtractor{bin: bin}
}

func (t *TesseractExtractor) ExtractLines(ctx context.Context, image []byte) ([]string, error) {
	tmp, err := os.CreateTemp("", "menu-*.img")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.bin, tmp.Name(), "stdout")
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("tesseract: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("tesseract: %w", err)
	}

	return SplitLines(string(out)), nil
}
