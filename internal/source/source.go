// Package source obtains ATT&CK STIX bundles from a local file, a cache
// directory or the published data repository.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bjaus/attackcsv"
)

// ErrFetch reports a failed download. It is not retried.
var ErrFetch = errors.New("fetch bundle")

// Source locates one ATT&CK release.
type Source struct {
	// URLPrefix is the data repository root, without a trailing slash.
	URLPrefix string
	Domain    string
	Version   string

	// Input, when set, is read instead of the cache or network.
	Input string
	// CacheDir holds downloaded bundles. Empty disables caching.
	CacheDir string
	// Refresh skips the cache lookup but still writes the cache.
	Refresh bool

	Client *http.Client
	Logger *log.Logger
}

// URL returns <prefix>/<domain>/<domain>-<version>.json.
func (s Source) URL() string {
	return fmt.Sprintf("%s/%s/%s-%s.json", s.URLPrefix, s.Domain, s.Domain, s.Version)
}

// CachePath returns the file a download is cached to.
func (s Source) CachePath() string {
	if s.CacheDir == "" {
		return ""
	}
	return filepath.Join(s.CacheDir, fmt.Sprintf("%s-%s.json", s.Domain, s.Version))
}

// Load returns the decoded bundle. It does not validate it, but only a
// bundle that passes [attackcsv.Bundle.Validate] is written to the cache.
// A cached copy that no longer decodes is removed and fetched again.
func (s Source) Load(ctx context.Context) (attackcsv.Bundle, error) {
	logger := s.logger()
	if s.Input != "" {
		logger.Debug("reading bundle", "path", s.Input)
		data, err := os.ReadFile(s.Input)
		if err != nil {
			return attackcsv.Bundle{}, fmt.Errorf("read input: %w", err)
		}
		return attackcsv.Decode(bytes.NewReader(data))
	}

	cache := s.CachePath()
	if cache != "" && !s.Refresh {
		if b, ok := s.loadCache(cache); ok {
			return b, nil
		}
	}

	logger.Info("fetching ATT&CK STIX bundle", "domain", s.Domain, "version", s.Version)
	data, err := s.fetch(ctx)
	if err != nil {
		return attackcsv.Bundle{}, err
	}
	b, err := attackcsv.Decode(bytes.NewReader(data))
	if err != nil {
		return attackcsv.Bundle{}, fmt.Errorf("%s: %w", s.URL(), err)
	}

	switch {
	case cache == "":
	case b.Validate() != nil:
		logger.Warn("not caching invalid bundle", "url", s.URL())
	default:
		if err := writeCache(cache, data); err != nil {
			logger.Warn("could not cache bundle", "path", cache, "err", err)
		} else {
			logger.Debug("cached bundle", "path", cache, "bytes", len(data))
		}
	}
	return b, nil
}

// loadCache reports false when the cache is missing or unusable. An
// unusable entry is removed.
func (s Source) loadCache(path string) (attackcsv.Bundle, bool) {
	logger := s.logger()
	data, err := os.ReadFile(path)
	if err != nil {
		return attackcsv.Bundle{}, false
	}
	b, err := attackcsv.Decode(bytes.NewReader(data))
	if err == nil {
		err = b.Validate()
	}
	if err != nil {
		logger.Warn("discarding cached bundle", "path", path, "err", err)
		if err := os.Remove(path); err != nil {
			logger.Warn("could not remove cached bundle", "path", path, "err", err)
		}
		return attackcsv.Bundle{}, false
	}
	logger.Debug("using cached bundle", "path", path)
	return b, true
}

func (s Source) fetch(ctx context.Context) ([]byte, error) {
	url := s.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrFetch, resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
	}
	return data, nil
}

func (s Source) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 5 * time.Minute}
}

func (s Source) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}

// writeCache writes through a temp file so a partial download never
// becomes the cached copy.
func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
