// Package evidence validates, fingerprints and stores report attachments.
// Digests are computed over file bytes before anything is uploaded, so the
// hashes recorded on the ledger are a pure function of the submitted content.
package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFiles caps the attachments on a single report
	MaxFiles = 5
	// MaxFileSize caps each attachment at 10 MiB
	MaxFileSize = 10 << 20
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
}

var (
	ErrTooManyFiles    = errors.New("too many evidence files")
	ErrFileTooLarge    = errors.New("evidence file too large")
	ErrUnsupportedType = errors.New("unsupported evidence file type")
)

// Validate checks every attachment against the count, size and type limits.
// It runs before any database or storage write so an oversized batch rejects
// the whole submission cleanly.
func Validate(files []*multipart.FileHeader) error {
	if len(files) > MaxFiles {
		return fmt.Errorf("%w: %d files, limit is %d", ErrTooManyFiles, len(files), MaxFiles)
	}
	for _, f := range files {
		if f.Size > MaxFileSize {
			return fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrFileTooLarge, f.Filename, f.Size, MaxFileSize)
		}
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedExtensions[ext] {
			return fmt.Errorf("%w: %q, allowed types are jpeg, jpg, png, pdf", ErrUnsupportedType, f.Filename)
		}
	}
	return nil
}

// Digest returns the hex-encoded SHA-256 of the file contents
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
