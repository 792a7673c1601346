package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/obsmith/semvault/internal/cache"
)

// Reader loads document text with tolerant decoding and an optional
// extraction-side cache. Vault notes are UTF-8 by convention, but exports
// and old editors leave Latin-1 strays behind; those decode instead of
// erroring so one bad file never aborts a scan for the wrong reason.
type Reader struct {
	cache    cache.Cache // nil disables caching
	maxBytes int64
}

// NewReader creates a Reader. c may be nil.
func NewReader(c cache.Cache, maxBytes int64) *Reader {
	if maxBytes <= 0 {
		maxBytes = 4_000_000
	}
	return &Reader{cache: c, maxBytes: maxBytes}
}

// Read returns the decoded text of the file at path. Results are cached
// keyed by (path, mtime, size), so unchanged files hit the cache and the
// run stays idempotent.
func (r *Reader) Read(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat: %w", err)
	}

	key := cache.FileKey(path, info.ModTime(), info.Size())
	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			return string(data), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Read one byte past the cap so oversized files are detected rather
	// than silently truncated; a marker past the cutoff would vanish.
	raw, err := io.ReadAll(io.LimitReader(f, r.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	if int64(len(raw)) > r.maxBytes {
		return "", fmt.Errorf("file exceeds %d bytes", r.maxBytes)
	}

	text := decode(raw)

	if r.cache != nil {
		_ = r.cache.Set(key, []byte(text), 0)
	}

	return text, nil
}

// decode returns raw as a string, falling back to Latin-1 when the bytes are
// not valid UTF-8. Latin-1 decoding cannot fail, so decode is total.
func decode(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
