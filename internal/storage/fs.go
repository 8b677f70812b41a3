package storage

import (
	"errors"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadKey = errors.New("invalid blob key")

// FSStore keeps recordings as plain files under a base directory.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data/blobs"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// resolve maps a key to a path and rejects keys that would land
// outside the base directory.
func (s *FSStore) resolve(key string) (string, error) {
	if key == "" {
		return "", ErrBadKey
	}
	dst := filepath.Join(s.base, key)
	rel, err := filepath.Rel(s.base, dst)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrBadKey
	}
	return dst, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	dst, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, string, error) {
	src, err := s.resolve(key)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, "", err
	}
	return f, contentTypeForKey(key), nil
}

func (s *FSStore) SignedURL(key string) (string, error) {
	if _, err := s.resolve(key); err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.Join(s.base, key)}
	return u.String(), nil
}

// contentTypeForKey guesses from the extension. Browsers record audio
// as webm/ogg, which mime.TypeByExtension does not always know.
func contentTypeForKey(key string) string {
	ext := strings.ToLower(filepath.Ext(key))
	switch ext {
	case ".webm":
		return "audio/webm"
	case ".ogg":
		return "audio/ogg"
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
