package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

var (
	_ Uploader                = (*LocalStorage)(nil)
	_ validator.FileInspector = (*LocalStorage)(nil)
)

// LocalStorage keeps uploads on the local filesystem and answers the file
// questions asked by validation rules. All paths are relative to baseDir and
// may not escape it. Safe for concurrent use.
type LocalStorage struct {
	baseDir       string // Absolute path - all files stored within this directory
	uploads       *uploadRegistry
	uploadTimeout time.Duration
	maxSize       int64
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalUploadTimeout sets the timeout for upload operations.
// If not set, relies on context deadline from caller.
func WithLocalUploadTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.uploadTimeout = timeout
	}
}

// WithMaxUploadSize rejects uploads larger than maxBytes while they are written.
func WithMaxUploadSize(maxBytes int64) LocalOption {
	return func(s *LocalStorage) {
		s.maxSize = maxBytes
	}
}

// NewLocalStorage creates the storage; baseDir is resolved to an absolute path
// and created if it doesn't exist.
func NewLocalStorage(baseDir string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	s := &LocalStorage{
		baseDir: absBaseDir,
		uploads: newUploadRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Save writes the upload under dir with a generated name and marks it uploaded.
// Partial files are removed on errors and cancellation.
func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, dir string) (*Upload, error) {
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fh == nil {
		return nil, ErrNilFileHeader
	}

	relPath := filepath.ToSlash(filepath.Join(filepath.Clean(dir), storedName(fh)))
	absPath, err := s.resolvePath(relPath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	written, err := s.copyUpload(ctx, dst, src)
	if closeErr := dst.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %v", ErrFailedToWriteFile, closeErr)
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, err
	}

	mimeType, err := s.DetectMIMEType(ctx, relPath)
	if err != nil {
		mimeType = "application/octet-stream"
	}

	s.uploads.mark(absPath)

	return &Upload{
		Path:      relPath,
		Filename:  SanitizeFilename(fh.Filename),
		Size:      written,
		MIMEType:  mimeType,
		Extension: GetExtension(fh),
	}, nil
}

// copyUpload copies in chunks so cancellation and the size limit apply mid-stream.
func (s *LocalStorage) copyUpload(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	written := int64(0)
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if s.maxSize > 0 && written+int64(n) > s.maxSize {
				return written, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxSize)
			}
			nw, writeErr := dst.Write(buf[:n])
			written += int64(nw)
			if writeErr != nil {
				return written, fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}
}

// MarkUploaded registers an existing file as uploaded, for files received
// outside Save (for example by a streaming proxy).
func (s *LocalStorage) MarkUploaded(path string) error {
	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}
	s.uploads.mark(absPath)
	return nil
}

// Delete removes a single file and forgets its upload mark.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absPath, err := s.resolvePath(path)
	if err != nil {
		return err
	}

	info, err := s.stat(absPath, path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	s.uploads.forget(absPath)

	return nil
}

// IsUploadedFile reports whether path was stored by Save or MarkUploaded.
// Paths outside the base directory are never uploads.
func (s *LocalStorage) IsUploadedFile(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	absPath, err := s.resolvePath(path)
	if err != nil {
		return false, nil
	}
	return s.uploads.has(absPath), nil
}

// Exists reports whether a regular file exists at path.
func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	absPath, err := s.resolvePath(path)
	if err != nil {
		return false, nil
	}

	info, err := s.stat(absPath, path)
	if errors.Is(err, ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (s *LocalStorage) FileSize(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	absPath, err := s.resolvePath(path)
	if err != nil {
		return 0, err
	}
	info, err := s.stat(absPath, path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *LocalStorage) DetectMIMEType(ctx context.Context, path string) (string, error) {
	f, err := s.open(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return DetectMIMEType(f)
}

// DetectImageType returns an empty string for files that are not images.
func (s *LocalStorage) DetectImageType(ctx context.Context, path string) (string, error) {
	f, err := s.open(ctx, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return DetectImageType(f)
}

func (s *LocalStorage) open(ctx context.Context, path string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	absPath, err := s.resolvePath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, nil
}

func (s *LocalStorage) stat(absPath, path string) (os.FileInfo, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	return info, nil
}

// resolvePath validates and resolves a path within the base directory.
// Critical security function that prevents path traversal attacks by ensuring
// all resolved paths stay within baseDir bounds using string prefix checking.
func (s *LocalStorage) resolvePath(path string) (string, error) {
	path = filepath.Clean(filepath.FromSlash(path))
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, path))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	return absPath, nil
}
