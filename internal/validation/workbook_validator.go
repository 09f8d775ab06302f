// Package validation checks uploaded files before the parsing layer
// touches them.
package validation

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// xlsx files are zip archives; every upload must start with the zip
// local-file-header signature.
var zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}

// WorkbookValidator vets workbook uploads by name and content.
type WorkbookValidator struct {
	logger   *slog.Logger
	maxBytes int64
}

// NewWorkbookValidator creates a validator capping uploads at maxBytes.
// A non-positive cap disables the size check.
func NewWorkbookValidator(maxBytes int64, logger *slog.Logger) *WorkbookValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookValidator{logger: logger, maxBytes: maxBytes}
}

// ValidateName checks the upload filename looks like an Excel workbook.
func (v *WorkbookValidator) ValidateName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".xlsx" && ext != ".xlsm" {
		v.logger.Warn("rejected upload by extension",
			slog.String("filename", name),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported file type %q, expected .xlsx", ext)
	}
	return nil
}

// ValidateContent checks the payload is plausibly an xlsx archive.
func (v *WorkbookValidator) ValidateContent(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("uploaded workbook is empty")
	}
	if v.maxBytes > 0 && int64(len(data)) > v.maxBytes {
		v.logger.Warn("rejected oversized upload",
			slog.Int("size", len(data)),
			slog.Int64("limit", v.maxBytes))
		return fmt.Errorf("workbook exceeds %d byte limit", v.maxBytes)
	}
	if !bytes.HasPrefix(data, zipSignature) {
		return fmt.Errorf("file is not a valid xlsx workbook")
	}
	return nil
}
