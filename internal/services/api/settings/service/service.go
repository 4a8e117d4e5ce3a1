// Package service reads and writes the settings document
package service

import (
	"context"
	"encoding/json"
	"strings"

	"adperf/internal/modkit/repokit"
	perr "adperf/internal/platform/errors"
	"adperf/internal/platform/logger"
	"adperf/internal/platform/metrics"
	"adperf/internal/services/api/settings/domain"
	"adperf/internal/services/api/settings/repo"
)

// ErrNotConfigured is returned when no settings database is wired
var ErrNotConfigured = perr.Unavailablef("settings store not configured: set SETTINGS_DATABASE_URL or SETTINGS_DATABASE_PATH")

// Service defines the settings service contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
}

var _ Service = (*Svc)(nil)

// New constructs a settings service, a nil db reports every call as not configured
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("settings.Service requires a non nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

// Read returns the stored document or the defaults when nothing was written yet
func (s *Svc) Read(ctx context.Context) (doc domain.Document, err error) {
	defer func() { metrics.RecordSettings("read", err) }()
	if s.db == nil {
		return nil, ErrNotConfigured
	}

	var raw string
	var found bool
	err = repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if err := r.Ensure(ctx); err != nil {
			return err
		}
		var err error
		raw, found, err = r.Get(ctx, domain.Key)
		return err
	})
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("settings: read failed")
		return nil, perr.FromDB(err, "failed to read settings")
	}
	if !found {
		return domain.DefaultDocument(), nil
	}

	doc, err = decode(raw)
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("settings: stored document is corrupt")
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "stored settings are not a JSON object")
	}
	return doc, nil
}

// Write replaces the stored document wholesale and returns it unchanged
func (s *Svc) Write(ctx context.Context, doc domain.Document) (_ domain.Document, err error) {
	defer func() { metrics.RecordSettings("write", err) }()
	if s.db == nil {
		return nil, ErrNotConfigured
	}
	if doc == nil {
		return nil, perr.JSONErrf("settings must be a JSON object")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "settings are not serializable")
	}

	err = repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if err := r.Ensure(ctx); err != nil {
			return err
		}
		return r.Put(ctx, domain.Key, string(raw))
	})
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("settings: write failed")
		return nil, perr.FromDB(err, "failed to save settings")
	}
	logger.C(ctx).Debug().Int("bytes", len(raw)).Msg("settings saved")
	return doc, nil
}

// decode keeps numbers as written so a read returns what was stored
func decode(raw string) (domain.Document, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, perr.JSONErrf("settings value is null")
	}
	return doc, nil
}
