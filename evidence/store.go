package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store persists evidence files and returns a public URL for each
type Store interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// CloudinaryStore uploads evidence to Cloudinary, configured through the
// CLOUDINARY_URL environment variable.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from the ambient Cloudinary credentials
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload stores the file under a fresh public ID in the evidence folder
func (s *CloudinaryStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       "evidence",
		PublicID:     uuid.NewString(),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %q: %w", filename, err)
	}
	return resp.SecureURL, nil
}

// Processor turns a validated multipart batch into content digests and
// stored URLs. Digests are positional: hashes[i] always fingerprints the
// file behind urls[i].
type Processor struct {
	Store Store
}

// Process reads, digests and uploads every file in order. Validation is the
// caller's job; Process assumes the batch already passed Validate.
func (p *Processor) Process(ctx context.Context, files []*multipart.FileHeader) ([]string, []string, error) {
	hashes := []string{}
	urls := []string{}
	if len(files) > 0 && p.Store == nil {
		return nil, nil, errors.New("evidence storage is not configured")
	}
	for _, f := range files {
		src, err := f.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %q: %w", f.Filename, err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %q: %w", f.Filename, err)
		}

		url, err := p.Store.Upload(ctx, f.Filename, data)
		if err != nil {
			return nil, nil, err
		}

		hashes = append(hashes, Digest(data))
		urls = append(urls, url)
		zap.S().Debugw("stored evidence file", "filename", f.Filename, "bytes", len(data))
	}
	return hashes, urls, nil
}
