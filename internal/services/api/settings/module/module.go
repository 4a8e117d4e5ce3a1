// Package module wires the settings store into the API
package module

import (
	modkit "adperf/internal/modkit"
	phttp "adperf/internal/platform/net/http"
	"adperf/internal/services/api/settings/domain"
	settingshttp "adperf/internal/services/api/settings/http"
	settingsrepo "adperf/internal/services/api/settings/repo"
	settingssvc "adperf/internal/services/api/settings/service"
)

// Ports is the port set other modules read
type Ports struct {
	Service domain.ServicePort
}

// Module implements the settings module
type Module struct {
	modkit.Base
}

// New constructs the settings module on the relational seam of deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("settings"),
		modkit.WithPrefix("/settings"),
	}, opts...)...)

	db, dialect := deps.Relational()
	binder, err := settingsrepo.BinderFor(dialect)
	if err != nil {
		deps.Log.Warn().Msg("settings: no relational database, settings endpoints disabled")
		db, binder = nil, settingsrepo.NewSQLite()
	}
	svc := settingssvc.New(db, binder)

	m := &Module{}
	m.Base = modkit.NewBase(b, func(r phttp.Router) { settingshttp.Register(r, svc) })
	m.SetPorts(Ports{Service: svc})

	deps.Log.Info().Str("dialect", dialect).Msg("settings module ready")
	return m
}
