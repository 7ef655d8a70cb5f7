// Package media turns uploaded image files into data URLs that can be stored
// directly in an image block
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxSize is the upload limit used when none is configured
const DefaultMaxSize int64 = 5 * 1024 * 1024 // 5MB

var (
	// ErrEmptyFile is returned for a zero-length upload
	ErrEmptyFile = errors.New("file is empty")
	// ErrNotImage is returned when the content is not an image
	ErrNotImage = errors.New("file is not an image")
	// ErrFileTooLarge is returned when the content exceeds the size limit
	ErrFileTooLarge = errors.New("file is too large")
)

// ReadDataURL reads an image from r and encodes it as data:<mime>;base64,<payload>.
//
// The MIME type is sniffed from the content. declaredType (usually the multipart
// Content-Type header) is only used when sniffing cannot tell more than
// application/octet-stream and the declared type is itself an image.
// maxSize <= 0 means DefaultMaxSize.
func ReadDataURL(r io.Reader, declaredType string, maxSize int64) (string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, maxSize)
	}

	mimeType, err := detectImageType(data, declaredType)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	buf.WriteString("data:")
	buf.WriteString(mimeType)
	buf.WriteString(";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	return buf.String(), nil
}

func detectImageType(data []byte, declaredType string) (string, error) {
	detected := mimetype.Detect(data)
	// Drop parameters such as charset
	mimeType, _, _ := strings.Cut(detected.String(), ";")

	if isImage(mimeType) {
		return mimeType, nil
	}

	declared := strings.ToLower(strings.TrimSpace(declaredType))
	declared, _, _ = strings.Cut(declared, ";")
	if detected.Is("application/octet-stream") && isImage(declared) {
		return declared, nil
	}
	return "", fmt.Errorf("%w: detected %s", ErrNotImage, mimeType)
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
