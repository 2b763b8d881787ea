package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for DetectImageType
	_ "image/jpeg" // register JPEG decoder for DetectImageType
	_ "image/png"  // register PNG decoder for DetectImageType
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Upload describes a file received through a request and persisted by an Uploader.
// Path is what validation rules receive as the field value.
type Upload struct {
	Path      string
	Filename  string
	Size      int64
	MIMEType  string
	Extension string
}

// Uploader persists multipart uploads under dir and remembers them as uploaded.
type Uploader interface {
	Save(ctx context.Context, fh *multipart.FileHeader, dir string) (*Upload, error)
}

const (
	// sniffLen is the most http.DetectContentType ever reads.
	sniffLen = 512
	// imageHeadLen covers image headers placed after metadata blocks such as JPEG EXIF.
	imageHeadLen = 64 << 10
)

// sniffOnlyImages maps image MIME types the standard decoders do not cover to
// their type names.
var sniffOnlyImages = map[string]string{
	"image/webp":               "webp",
	"image/bmp":                "bmp",
	"image/x-icon":             "ico",
	"image/vnd.microsoft.icon": "ico",
}

// DetectMIMEType sniffs the MIME type from the leading bytes of r.
func DetectMIMEType(r io.Reader) (string, error) {
	head, err := readHead(r, sniffLen)
	if err != nil {
		return "", err
	}
	return http.DetectContentType(head), nil
}

// DetectImageType returns the image format of the data in r ("png", "jpeg",
// "gif", "webp", "bmp", "ico"), or an empty string when r is not an image.
func DetectImageType(r io.Reader) (string, error) {
	head, err := readHead(r, imageHeadLen)
	if err != nil {
		return "", err
	}
	return imageType(head), nil
}

func imageType(head []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(head)); err == nil {
		return format
	}
	mimeType := http.DetectContentType(head)
	return sniffOnlyImages[mimeType]
}

func readHead(r io.Reader, n int64) ([]byte, error) {
	head, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return head, nil
}

// GetExtension returns the lower-cased extension of the uploaded filename.
func GetExtension(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(fh.Filename))
}

// SanitizeFilename removes any path components and dangerous characters from a filename
// to prevent path traversal attacks and other security issues.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// storedName gives every upload a collision-free name that keeps the extension.
func storedName(fh *multipart.FileHeader) string {
	return uuid.NewString() + GetExtension(fh)
}

// uploadRegistry remembers which paths were received as uploads.
type uploadRegistry struct {
	mu    sync.RWMutex
	paths map[string]struct{}
}

func newUploadRegistry() *uploadRegistry {
	return &uploadRegistry{paths: make(map[string]struct{})}
}

func (r *uploadRegistry) mark(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths[path] = struct{}{}
}

func (r *uploadRegistry) forget(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, path)
}

func (r *uploadRegistry) has(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.paths[path]
	return ok
}
