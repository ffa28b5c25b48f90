package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/gabrielmiguelok/golivefolio/internal/config"
	"github.com/gabrielmiguelok/golivefolio/internal/content"
	"github.com/gabrielmiguelok/golivefolio/internal/portfolio"
	"github.com/gabrielmiguelok/golivefolio/internal/server"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/metrics"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
	"github.com/gabrielmiguelok/golivefolio/pkg/router"
	"github.com/gabrielmiguelok/golivefolio/pkg/state"
)

// app holds everything serve starts and stops.
type app struct {
	server *server.Server
	live   *router.Router
	store  state.Store
}

func openStore(cfg config.StoreConfig) (state.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return state.OpenSQLite(cfg.Path)
	default:
		return state.NewMemoryStore(), nil
	}
}

func loadContent(fsys afero.Fs, cfg config.ContentConfig) (*content.Portfolio, error) {
	return content.Load(fsys, cfg.Path)
}

func newApp(cfg *config.Config, fsys afero.Fs, log logging.Logger) (*app, error) {
	portfolioContent, err := loadContent(fsys, cfg.Content)
	if err != nil {
		return nil, err
	}

	codecs := protocol.NewCodecRegistry()
	if err := codecs.SetDefault(cfg.Live.Codec); err != nil {
		return nil, errors.Wrap(err, "selecting live codec")
	}

	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, errors.Wrap(err, "opening preference store")
	}

	m := metrics.New("golivefolio")
	liveCfg := cfg.CoreConfig()
	if err := liveCfg.Validate(); err != nil {
		store.Close()
		return nil, errors.Wrap(err, "live config")
	}
	live := router.New(
		router.WithConfig(liveCfg),
		router.WithLogger(log),
		router.WithMetrics(m),
		router.WithCodecs(codecs),
	)

	var static afero.Fs
	if cfg.Content.Static != "" {
		static = afero.NewReadOnlyFs(afero.NewBasePathFs(fsys, cfg.Content.Static))
	}

	srv := server.New(server.Options{
		Config: cfg.Server,
		Live:   live,
		Page: portfolio.Deps{
			Content:  portfolioContent,
			Features: cfg.Features,
			Metrics:  m,
			Logger:   log,
		},
		Store:          store,
		MaxConnections: liveCfg.MaxConnections,
		Static:         static,
		Version:        Version,
		Logger:         log,
	})

	return &app{server: srv, live: live, store: store}, nil
}
