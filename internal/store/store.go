package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/model"
)

// Store is a ledger file on disk. Every call opens and closes the file.
type Store struct {
	path string
	loc  locale.Locale
	opts Options
}

// New creates a Store for the file at path.
func New(path string, loc locale.Locale, opts Options) *Store {
	return &Store{path: path, loc: loc, opts: opts}
}

// Path returns the ledger file path.
func (s *Store) Path() string { return s.path }

// Locale returns the label set used for the file.
func (s *Store) Locale() locale.Locale { return s.loc }

// Load reads every record. A missing file is an error wrapping fs.ErrNotExist.
func (s *Store) Load() ([]model.Transaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	txs, err := Decode(f, s.loc, s.opts)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}
	log.Debug().Str("path", s.path).Int("records", len(txs)).Msg("ledger loaded")
	return txs, nil
}

// Append writes one record at the end of the file, creating it if needed.
// A final record left without its blank line is terminated first.
func (s *Store) Append(tx model.Transaction) error {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	sep, err := missingSeparator(f)
	if err != nil {
		return err
	}
	if sep != "" {
		if _, err := io.WriteString(f, sep); err != nil {
			return fmt.Errorf("terminating last record: %w", err)
		}
		log.Debug().Str("path", s.path).Int("newlines", len(sep)).Msg("terminated last record")
	}

	if err := Encode(f, s.loc, tx); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	log.Debug().Str("path", s.path).Msg("record appended")
	return nil
}

// missingSeparator returns the newlines that must follow the current content
// of f for a new record to start its own block.
func missingSeparator(f *os.File) (string, error) {
	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat ledger: %w", err)
	}
	size := info.Size()
	if size == 0 {
		return "", nil
	}

	n := min(size, 4)
	buf := make([]byte, n)
	if _, err := f.ReadAt(buf, size-n); err != nil {
		return "", fmt.Errorf("reading ledger tail: %w", err)
	}
	switch tail := strings.ReplaceAll(string(buf), "\r", ""); {
	case strings.HasSuffix(tail, "\n\n"):
		return "", nil
	case strings.HasSuffix(tail, "\n"):
		return "\n", nil
	default:
		return "\n\n", nil
	}
}

// Rewrite replaces the whole file with txs. The new content is written to a
// temporary file in the same directory and renamed over the ledger, keeping
// the ledger's permissions. Lines of an unterminated final record that Load
// skipped are carried over unchanged after txs.
func (s *Store) Rewrite(txs []model.Transaction) error {
	mode := os.FileMode(0o644)
	var tail []string
	if f, err := os.Open(s.path); err == nil {
		info, statErr := f.Stat()
		_, tail, err = decode(f, s.loc, s.opts)
		f.Close()
		if statErr != nil {
			return fmt.Errorf("stat ledger: %w", statErr)
		}
		if err != nil {
			return fmt.Errorf("reading ledger %s: %w", s.path, err)
		}
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("opening ledger: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeAll(tmp, s.loc, txs); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if len(tail) > 0 {
		if _, err := io.WriteString(tmp, strings.Join(tail, "\n")+"\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("writing temp ledger: %w", err)
		}
		log.Warn().Str("path", s.path).Int("lines", len(tail)).Msg("kept unterminated final record at end of ledger")
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("setting ledger mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing ledger: %w", err)
	}
	log.Debug().Str("path", s.path).Int("records", len(txs)).Msg("ledger rewritten")
	return nil
}

// Create makes an empty ledger file if none exists.
func (s *Store) Create() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	return f.Close()
}
