package main

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/golivefolio/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration and the portfolio content",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, afero.NewOsFs())
	},
}

func runCheck(cmd *cobra.Command, fsys afero.Fs) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "config: ok (store=%s, codec=%s)\n", cfg.Store.Driver, cfg.Live.Codec)

	p, err := loadContent(fsys, cfg.Content)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "content: %s, %d skills, %d projects [%s]\n",
		p.Owner.Name, p.SkillCount(), len(p.Projects), strings.Join(p.Categories(), ", "))

	if cfg.Store.Driver == config.DriverSQLite {
		store, err := openStore(cfg.Store)
		if err != nil {
			return err
		}
		defer store.Close()
		fmt.Fprintf(out, "store: ok (%s)\n", cfg.Store.Path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
