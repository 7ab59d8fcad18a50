package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cleared-dev/wallet/internal/activity"
	"github.com/cleared-dev/wallet/internal/config"
	"github.com/cleared-dev/wallet/internal/gitops"
	"github.com/cleared-dev/wallet/internal/ledger"
	"github.com/cleared-dev/wallet/internal/locale"
	"github.com/cleared-dev/wallet/internal/model"
	"github.com/cleared-dev/wallet/internal/store"
)

// project is a resolved project directory: its config, ledger store and
// the service wired with the configured hooks.
type project struct {
	dir   string
	cfg   *config.Config
	loc   locale.Locale
	store *store.Store
	svc   *ledger.Service
}

func openProject(opts *globalOptions) (*project, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(dir, config.FileName)
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	if opts.file != "" {
		cfg.Ledger.File = opts.file
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	loc, err := cfg.Locale()
	if err != nil {
		return nil, err
	}

	st := store.New(resolve(dir, cfg.Ledger.File), loc, store.Options{
		KeepUnterminated: cfg.Ledger.KeepUnterminated,
	})

	var svcOpts []ledger.Option
	if cfg.Activity.Enabled {
		svcOpts = append(svcOpts, ledger.WithRecorder(activity.NewLog(resolve(dir, cfg.Activity.File))))
	}
	if cfg.Git.AutoCommit {
		svcOpts = append(svcOpts, ledger.WithCommitter(gitops.Committer{
			Dir:         dir,
			AuthorName:  cfg.Git.AuthorName,
			AuthorEmail: cfg.Git.AuthorEmail,
		}))
	}

	log.Debug().Str("dir", dir).Str("ledger", st.Path()).Str("locale", loc.Name).Msg("project opened")
	return &project{
		dir:   dir,
		cfg:   cfg,
		loc:   loc,
		store: st,
		svc:   ledger.NewService(st, svcOpts...),
	}, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(store.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want DD.MM.YYYY", s)
	}
	return d, nil
}

// recordFlags are the four fields of a record given on the command line.
type recordFlags struct {
	date        string
	category    string
	amount      int64
	description string
}

// transaction builds the record. With strict set the category must be one
// of the two known categories; otherwise any stored name is accepted so that
// records with unusual categories can still be matched.
func (f recordFlags) transaction(loc locale.Locale, strict bool) (model.Transaction, error) {
	date, err := parseDate(f.date)
	if err != nil {
		return model.Transaction{}, err
	}
	category, err := loc.ParseCategory(f.category)
	if err != nil {
		if strict {
			return model.Transaction{}, err
		}
		category = loc.DecodeCategory(f.category)
	}
	return ledger.Create(date, category, f.amount, f.description), nil
}
