package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/shutdown"
)

var (
	serveAddr string
	serveDev  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Address = serveAddr
		}
		if cmd.Flags().Changed("dev") {
			cfg.Server.Dev = serveDev
		}

		log, err := newLogger(cfg, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		a, err := newApp(cfg, afero.NewOsFs(), log)
		if err != nil {
			return err
		}

		sh := shutdown.NewHandler(shutdown.Config{
			Timeout: shutdown.DefaultConfig().Timeout,
			Signals: shutdown.DefaultConfig().Signals,
			Logger:  log,
		})
		sh.Register(shutdown.HTTPServerHook("http", a.server.Shutdown))
		sh.RegisterFunc("live", shutdown.PriorityLive, a.live.Shutdown)
		sh.Register(shutdown.CloseableHook("store", shutdown.PriorityStore, a.store))

		fatal := make(chan error, 1)
		go func() {
			if err := a.server.Start(); err != nil {
				fatal <- err
			}
		}()

		log.Info("golivefolio started",
			logging.String("addr", cfg.Server.Address),
			logging.Bool("dev", cfg.Server.Dev),
			logging.String("store", cfg.Store.Driver),
			logging.String("codec", cfg.Live.Codec))
		return sh.Wait(cmd.Context(), fatal)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address (overrides server.address)")
	serveCmd.Flags().BoolVar(&serveDev, "dev", false, "development mode (overrides server.dev)")
	rootCmd.AddCommand(serveCmd)
}
