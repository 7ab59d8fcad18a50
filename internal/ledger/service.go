package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cleared-dev/wallet/internal/model"
	"github.com/cleared-dev/wallet/internal/store"
)

// ErrNotFound is returned when no record matches an edit target.
var ErrNotFound = errors.New("record not found")

// Recorder keeps a history of changes made through the Service.
type Recorder interface {
	Record(action string, tx model.Transaction, details string) error
}

// Committer snapshots the project after a change.
type Committer interface {
	Commit(message string) error
}

// Service ties the ledger operations to a file store.
type Service struct {
	store     *store.Store
	recorder  Recorder
	committer Committer
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every add and edit.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithCommitter commits after every add and edit.
func WithCommitter(c Committer) Option {
	return func(s *Service) { s.committer = c }
}

// NewService creates a ledger Service.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{store: st}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying file store.
func (s *Service) Store() *store.Store { return s.store }

// Load reads all records from the ledger file.
func (s *Service) Load() ([]model.Transaction, error) {
	return s.store.Load()
}

// Add validates tx and appends it to the ledger file.
func (s *Service) Add(tx model.Transaction) error {
	if err := check(tx); err != nil {
		return err
	}
	if err := s.store.Append(tx); err != nil {
		return err
	}
	s.after("add", tx, "", fmt.Sprintf("add: %s %s %d", tx.Date.Format(store.DateFormat), tx.Category, tx.Amount))
	return nil
}

// Apply edits records in memory and, when a record matched, rewrites the
// ledger file with the result. It reports whether a record matched.
func (s *Service) Apply(records []model.Transaction, target, replacement model.Transaction) (bool, error) {
	if err := check(replacement); err != nil {
		return false, err
	}
	if !Edit(records, target, replacement) {
		return false, nil
	}
	if err := s.store.Rewrite(records); err != nil {
		return true, err
	}
	details := fmt.Sprintf("was %s %s %d %q", target.Date.Format(store.DateFormat), target.Category, target.Amount, target.Description)
	s.after("edit", replacement, details, fmt.Sprintf("edit: %s %s %d", replacement.Date.Format(store.DateFormat), replacement.Category, replacement.Amount))
	return true, nil
}

// Edit loads the ledger, replaces the first record equal to target and saves
// the file. It returns ErrNotFound when nothing matches.
func (s *Service) Edit(target, replacement model.Transaction) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	ok, err := s.Apply(records, target, replacement)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Search loads the ledger and returns the records matching term.
func (s *Service) Search(term string, kind SearchKind) ([]model.Transaction, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	return Search(records, term, kind, s.store.Locale()), nil
}

// Totals loads the ledger and computes totals including pending records.
func (s *Service) Totals(pending ...model.Transaction) (model.Totals, error) {
	records, err := s.Load()
	if err != nil {
		return model.Totals{}, err
	}
	return ComputeTotals(records, pending...), nil
}

func (s *Service) after(action string, tx model.Transaction, details, message string) {
	if s.recorder != nil {
		if err := s.recorder.Record(action, tx, details); err != nil {
			log.Warn().Err(err).Str("action", action).Msg("failed to write activity log")
		}
	}
	if s.committer != nil {
		if err := s.committer.Commit(message); err != nil {
			log.Warn().Err(err).Str("action", action).Msg("failed to commit ledger change")
		}
	}
}

// check rejects a record that would break the ledger rules.
func check(tx model.Transaction) error {
	verrs := validateOne(tx)
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Description
	}
	return fmt.Errorf("invalid record: %s", strings.Join(msgs, "; "))
}
