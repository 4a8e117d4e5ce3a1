package modkit

import (
	"adperf/internal/modkit/repokit"
	"adperf/internal/platform/config"
	"adperf/internal/platform/logger"
	"adperf/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// every seam is optional, modules decide what a nil seam means
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG and Lite are the relational seams, at most one is usually set
	PG   repokit.TxRunner
	Lite repokit.TxRunner

	// CH is the warehouse client, nil when the warehouse is not configured
	CH store.Clickhouse

	// Store is the facade the seams came from, used for readiness checks
	Store *store.Store
}

// DepsFrom copies the seams of an opened store
func DepsFrom(st *store.Store, cfg config.Conf, log logger.Logger) Deps {
	d := Deps{Log: log, Cfg: cfg, Store: st}
	if st != nil {
		d.PG, d.Lite, d.CH = st.PG, st.Lite, st.CH
	}
	return d
}

// Relational returns the settings database seam and its dialect
// postgres wins when both are configured
func (d Deps) Relational() (repokit.TxRunner, string) {
	switch {
	case d.PG != nil:
		return d.PG, DialectPostgres
	case d.Lite != nil:
		return d.Lite, DialectSQLite
	default:
		return nil, ""
	}
}

// Dialects understood by Relational
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)
