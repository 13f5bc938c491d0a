package storage

import (
	"context"
	"errors"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LocalStore implements BlobStore on a directory under the served static
// root, the simplified deployment variant with no hosted bucket. Objects
// written under "uploads/<name>" resolve to the relative URL
// "/uploads/<name>".
type LocalStore struct {
	root   string
	logger zerolog.Logger
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{
		root:   root,
		logger: log.With().Str("component", "localStore").Str("root", root).Logger(),
	}
}

func (s *LocalStore) Upload(_ context.Context, objectPath string, data []byte, _ string) (string, error) {
	full, err := s.resolve(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return "/" + objectPath, nil
}

func (s *LocalStore) Remove(_ context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		full, err := s.resolve(p)
		if err != nil {
			s.logger.Warn().Str("path", p).Err(err).Msg("skipping unresolvable path")
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Str("path", p).Err(err).Msg("object removal failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *LocalStore) List(_ context.Context, prefix string, limit int) ([]Object, error) {
	if limit <= 0 {
		limit = 100
	}

	dir := filepath.Join(s.root, filepath.FromSlash(prefix))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Object{}, nil
		}
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || len(objects) >= limit {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		modTime := info.ModTime()
		objects = append(objects, Object{
			Name:        entry.Name(),
			Path:        path.Join(prefix, entry.Name()),
			Size:        info.Size(),
			ContentType: mime.TypeByExtension(path.Ext(entry.Name())),
			UpdatedAt:   &modTime,
		})
	}
	return objects, nil
}

// PathFromURL maps the relative URLs this store mints ("/uploads/<name>")
// back to object paths. Anything else, hosted-bucket URLs included, is not
// ours to delete.
func (s *LocalStore) PathFromURL(rawURL string) string {
	name, ok := strings.CutPrefix(rawURL, "/"+UploadFolder+"/")
	if !ok || name == "" {
		return ""
	}
	return UploadFolder + "/" + name
}

// resolve joins an object path to the root, rejecting traversal outside it.
func (s *LocalStore) resolve(objectPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(objectPath))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", errors.New("invalid object path")
	}
	return filepath.Join(s.root, clean), nil
}
