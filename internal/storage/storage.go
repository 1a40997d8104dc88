// Package storage keeps uploaded inputs and rendered outputs on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ZacxDev/video-overlay/pkg/types"
)

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-_.]`)
	repeatedSep = regexp.MustCompile(`_+`)
)

// Store resolves upload ids to files and names render outputs
type Store struct {
	uploadDir string
	outputDir string
	now       func() time.Time
}

// New creates the upload and output directories if needed
func New(uploadDir, outputDir string) (*Store, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	return &Store{
		uploadDir: uploadDir,
		outputDir: outputDir,
		now:       time.Now,
	}, nil
}

func (s *Store) UploadDir() string { return s.uploadDir }

func (s *Store) OutputDir() string { return s.outputDir }

// Save writes an upload under its sanitized filename, replacing any earlier
// upload with the same name. The sanitized name is the video id.
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	id := SanitizeFilename(filename)
	if id == "" {
		return "", types.NewEditError(types.ErrorKindInvalidOperation,
			fmt.Sprintf("invalid upload filename %q", filename), nil)
	}

	f, err := os.Create(filepath.Join(s.uploadDir, id))
	if err != nil {
		return "", errors.Wrapf(err, "failed to create upload %s", id)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", errors.Wrapf(err, "failed to write upload %s", id)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "failed to write upload %s", id)
	}
	return id, nil
}

// Resolve returns the path of an uploaded video
func (s *Store) Resolve(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || id == "." || id == ".." {
		return "", types.NewEditError(types.ErrorKindInputNotFound,
			fmt.Sprintf("video %q not found", id), nil)
	}
	path := filepath.Join(s.uploadDir, id)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", types.NewEditError(types.ErrorKindInputNotFound,
			fmt.Sprintf("video %q not found", id), nil)
	}
	return path, nil
}

// OutputPath names a new render as <prefix>-<unix ms>.<ext> in the output
// directory and returns both the name and the full path.
func (s *Store) OutputPath(prefix, ext string) (name, path string) {
	name = fmt.Sprintf("%s-%d.%s", prefix, s.now().UnixMilli(), strings.TrimPrefix(ext, "."))
	return name, filepath.Join(s.outputDir, name)
}

// SanitizeFilename replaces anything outside [a-zA-Z0-9-_.] with an
// underscore and collapses runs of them. Leading dots are dropped.
func SanitizeFilename(filename string) string {
	sanitized := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	sanitized = unsafeChars.ReplaceAllString(sanitized, "_")
	sanitized = repeatedSep.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_")
	sanitized = strings.TrimLeft(sanitized, ".")
	return sanitized
}
