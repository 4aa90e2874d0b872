package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/odvcencio/blobtrace/pkg/config"
	"github.com/odvcencio/blobtrace/pkg/logging"
	"github.com/odvcencio/blobtrace/pkg/object"
	"github.com/odvcencio/blobtrace/pkg/search"
)

const version = "0.1.0-dev"

// app carries the configuration and logger shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}
	d := config.Defaults()

	root := &cobra.Command{
		Use:           "blobtrace",
		Short:         "Find the commits that contain an object and graph their ancestry",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	flags.StringP("store", "C", d.Store, "repository path or object directory")
	flags.IntP("workers", "j", d.Workers, "objects inspected in parallel")
	flags.Int("cache-size", d.CacheSize, "decoded objects kept in memory (0 disables)")
	flags.String("log-level", d.Log.Level, "log level: debug, info, warn, error")
	flags.String("log-format", d.Log.Format, "log encoding: console or json")
	for key, name := range map[string]string{
		"store":      "store",
		"workers":    "workers",
		"cache_size": "cache-size",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newGraphCmd(a))
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "blobtrace "+version)
		},
	}
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// open resolves the configured store and returns its object source.
func (a *app) open() (object.Source, error) {
	dir, err := config.ObjectDir(a.cfg.Store)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opening object store", zap.String("dir", dir), zap.Int("cache_size", a.cfg.CacheSize))
	return object.Open(dir, a.cfg.CacheSize)
}

// findMatches runs the commit scan for a user-supplied prefix.
func (a *app) findMatches(cmd *cobra.Command, rawPrefix string) (object.Source, []search.MatchedCommit, error) {
	prefix, err := object.ParsePrefix(rawPrefix)
	if err != nil {
		return nil, nil, err
	}
	src, err := a.open()
	if err != nil {
		return nil, nil, err
	}
	matches, err := search.New(src, a.logger, a.cfg.Workers).FindCommits(cmd.Context(), prefix)
	if err != nil {
		return nil, nil, err
	}
	return src, matches, nil
}
