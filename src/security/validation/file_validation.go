package validation

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/username/dividendvisor/backend/src/logger"
)

// MIME types reported for the two spreadsheet formats we accept.
const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeXLS  = "application/vnd.ms-excel"
)

// allowedExtensions is the extension allow-list for uploads.
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

// AllowedClientContentTypes is a map for quick lookup of allowed
// client-declared MIME types. Browsers are inconsistent here, so
// octet-stream and an empty header are tolerated; the magic-byte check is
// the authoritative one.
var AllowedClientContentTypes = map[string]bool{
	MimeXLSX:                   true,
	MimeXLS:                    true,
	"application/octet-stream": true,
	"": true,
}

// File format signatures. XLSX is a ZIP container, XLS an OLE2 compound
// document.
var (
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ValidateFileExtension checks the filename against the extension
// allow-list. Matching is case-insensitive.
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		logger.L.Warn("Disallowed upload extension", "filename", filename, "extension", ext)
		return fmt.Errorf("%w: file type '%s' is not supported, expected .xlsx or .xls", ErrValidationFailed, ext)
	}
	return nil
}

// ValidateFileSize checks the declared upload size against the configured
// maximum.
func ValidateFileSize(size, maxSize int64) error {
	if size <= 0 {
		return fmt.Errorf("%w: file is empty", ErrValidationFailed)
	}
	if size > maxSize {
		logger.L.Warn("Upload exceeds size limit", "size", size, "maxSize", maxSize)
		return fmt.Errorf("%w: file size %d exceeds the maximum of %d bytes", ErrValidationFailed, size, maxSize)
	}
	return nil
}

// ValidateClientContentType checks the Content-Type header provided by the
// client.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !AllowedClientContentTypes[normalized] {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("%w: client-declared file type '%s' is not allowed for spreadsheet upload", ErrValidationFailed, contentType)
	}
	return nil
}

// ValidateFileContentByMagicBytes checks the actual file content signature
// and returns the detected MIME type. The reader is rewound afterwards so
// the workbook parser can read the full file.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: file is nil", ErrValidationFailed)
	}

	buffer := make([]byte, 8)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrValidationFailed)
	}

	switch {
	case bytes.HasPrefix(buffer[:n], zipMagic):
		return MimeXLSX, nil
	case bytes.HasPrefix(buffer[:n], ole2Magic):
		return MimeXLS, nil
	}

	logger.L.Warn("Upload rejected: content signature is not a spreadsheet")
	return "", fmt.Errorf("%w: file content does not match a supported spreadsheet format", ErrValidationFailed)
}
