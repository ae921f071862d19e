package controller

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/SeakMengs/RenovaSite/internal/util"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrInvalidUpload = errors.New("invalid upload")

type storedFile struct {
	ObjectPath string
	URL        string
	Width      int
	Height     int
}

// sniffContentType reads the first 512 bytes and rewinds the file.
func sniffContentType(file multipart.File) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

// storeImage checks that fh decodes as an image and uploads it under dir.
func (b *baseController) storeImage(ctx context.Context, fh *multipart.FileHeader, dir string, maxSize int64) (*storedFile, error) {
	if fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MB", ErrInvalidUpload, fh.Filename, maxSize>>20)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a supported image", ErrInvalidUpload, fh.Filename)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %s: %w", fh.Filename, err)
	}

	objectPath := path.Join(dir, util.AddUniquePrefixToFileName(fh.Filename))
	if _, err := b.app.Storage.Upload(ctx, objectPath, file, fh.Size, "image/"+format); err != nil {
		return nil, err
	}
	b.app.Metrics.Uploaded("image")

	return &storedFile{
		ObjectPath: objectPath,
		URL:        b.app.Storage.PublicURL(objectPath),
		Width:      cfg.Width,
		Height:     cfg.Height,
	}, nil
}

// storeVideo uploads fh under dir when its content sniffs as a video.
func (b *baseController) storeVideo(ctx context.Context, fh *multipart.FileHeader, dir string, maxSize int64) (*storedFile, error) {
	if fh.Size > maxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MB", ErrInvalidUpload, fh.Filename, maxSize>>20)
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer file.Close()

	contentType, err := sniffContentType(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}
	if !strings.HasPrefix(contentType, "video/") {
		// DetectContentType does not know every container, trust the declared type for those
		declared := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(declared, "video/") {
			return nil, fmt.Errorf("%w: %s is not a video", ErrInvalidUpload, fh.Filename)
		}
		contentType = declared
	}

	objectPath := path.Join(dir, util.AddUniquePrefixToFileName(fh.Filename))
	if _, err := b.app.Storage.Upload(ctx, objectPath, file, fh.Size, contentType); err != nil {
		return nil, err
	}
	b.app.Metrics.Uploaded("video")

	return &storedFile{
		ObjectPath: objectPath,
		URL:        b.app.Storage.PublicURL(objectPath),
	}, nil
}
