package dictionary

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultURL points at the NLTK "words" corpus archive
const DefaultURL = "https://raw.githubusercontent.com/nltk/nltk_data/gh-pages/packages/corpora/words.zip"

// corpusMember is the English word list inside the NLTK archive
const corpusMember = "words/en"

// maxDownloadBytes caps the size of a corpus download
const maxDownloadBytes = 64 << 20

// ErrNotAvailable is returned when the corpus is missing and cannot be fetched
var ErrNotAvailable = errors.New("dictionary corpus not available")

// Store manages the on-disk copy of the corpus
type Store struct {
	path   string
	url    string
	client *http.Client
	logger *zap.Logger

	once   sync.Once
	corpus *Corpus
	err    error
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithHTTPClient sets the client used for downloads
func WithHTTPClient(client *http.Client) StoreOption {
	return func(s *Store) {
		s.client = client
	}
}

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store for the corpus at path, fetched from url when
// missing. Empty arguments select DefaultPath and DefaultURL.
func NewStore(path, url string, opts ...StoreOption) *Store {
	if path == "" {
		path = DefaultPath()
	}
	if url == "" {
		url = DefaultURL
	}

	s := &Store{
		path:   path,
		url:    url,
		client: &http.Client{Timeout: 2 * time.Minute},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath returns the corpus location under the user's data directory
func DefaultPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "abbrevsearch", "words")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "abbrevsearch", "words")
}

// Path returns the local corpus file
func (s *Store) Path() string {
	return s.path
}

// Available reports whether the corpus is present locally
func (s *Store) Available() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// Fetch downloads the corpus and installs it at the store path. The source
// may be a zip archive holding words/en or a plain word list.
func (s *Store) Fetch(ctx context.Context) error {
	s.logger.Info("downloading dictionary corpus", zap.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download corpus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("corpus download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read corpus: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return fmt.Errorf("corpus exceeds maximum size of %d bytes", maxDownloadBytes)
	}

	if isZip(data) {
		if data, err = extractMember(data, corpusMember); err != nil {
			return err
		}
	}

	return s.install(data)
}

// Load returns the corpus, fetching it first if it is not available locally.
// Only the first call does any work; later calls return the same result.
func (s *Store) Load(ctx context.Context) (*Corpus, error) {
	s.once.Do(func() {
		s.corpus, s.err = s.load(ctx)
	})
	return s.corpus, s.err
}

func (s *Store) load(ctx context.Context) (*Corpus, error) {
	if !s.Available() {
		if err := s.Fetch(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotAvailable, err)
		}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	corpus, err := ParseCorpus(f)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("dictionary corpus loaded",
		zap.String("path", s.path),
		zap.Int("words", corpus.Len()))
	return corpus, nil
}

// install writes data next to the target and renames it into place
func (s *Store) install(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".words-*")
	if err != nil {
		return fmt.Errorf("failed to create corpus file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to install corpus: %w", err)
	}
	return nil
}

func isZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

func extractMember(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus archive: %w", err)
	}

	for _, f := range zr.File {
		// Archives may nest the member under a top-level directory.
		if f.Name != name && !strings.HasSuffix(f.Name, "/"+name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	return nil, fmt.Errorf("corpus archive has no %s", name)
}
