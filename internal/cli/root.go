// Package cli wires the attack-csv command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bjaus/attackcsv"
	"github.com/bjaus/attackcsv/internal/config"
	"github.com/bjaus/attackcsv/internal/export"
	"github.com/bjaus/attackcsv/internal/source"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// ErrNotFound reports an object id that is not in the bundle.
var ErrNotFound = errors.New("object not found")

type ctxKey string

const appKey ctxKey = "app"

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	cfg    config.Config
	logger *log.Logger
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute runs the command tree with fang styling and interrupt handling.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		NewRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

// NewRootCmd constructs the root command. Run without a subcommand it
// downloads one ATT&CK release and writes a file per object type.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Convert MITRE ATT&CK STIX bundles to one table per object type",
		Long: `attack-csv fetches a MITRE ATT&CK STIX bundle and writes one file per
object type (attack-pattern, malware, relationship, ...). Every file has the
columns type, id, created and modified first, then every other field in the
order it first appears.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			if err := config.Load(v); err != nil {
				return err
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				Prefix:          config.AppName,
				Level:           level,
				ReportTimestamp: true,
			})
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, &app{cfg: cfg, logger: logger}))
			return nil
		},
		RunE: runConvert,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	for _, o := range config.Options() {
		addFlag(flags, o)
		_ = v.BindPFlag(o.Key, flags.Lookup(flagName(o.Key)))
	}

	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newFormatsCmd())
	return cmd
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func addFlag(flags *pflag.FlagSet, o config.Option) {
	name := flagName(o.Key)
	switch d := o.Default.(type) {
	case bool:
		flags.Bool(name, d, o.Comment)
	case int:
		flags.Int(name, d, o.Comment)
	default:
		flags.String(name, fmt.Sprint(d), o.Comment)
	}
}

func getApp(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, errors.New("internal error: app not initialized")
	}
	return a, nil
}

func (a *app) source() source.Source {
	return source.Source{
		URLPrefix: a.cfg.URLPrefix,
		Domain:    a.cfg.Domain,
		Version:   a.cfg.AttackVersion,
		Input:     a.cfg.Input,
		CacheDir:  a.cfg.CacheDir,
		Refresh:   a.cfg.Refresh,
		Client:    &http.Client{Timeout: a.cfg.HTTPTimeout},
		Logger:    a.logger,
	}
}

// convert loads the configured bundle and groups it.
func (a *app) convert(ctx context.Context) ([]attackcsv.Sheet, attackcsv.Stats, error) {
	b, err := a.source().Load(ctx)
	if err != nil {
		return nil, attackcsv.Stats{}, err
	}
	return attackcsv.Convert(b, a.cfg.ConvertOptions())
}

func runConvert(cmd *cobra.Command, _ []string) error {
	a, err := getApp(cmd)
	if err != nil {
		return err
	}
	sheets, stats, err := a.convert(cmd.Context())
	if err != nil {
		return err
	}
	if stats.Dropped > 0 {
		a.logger.Warn("objects without a type were skipped", "count", stats.Dropped)
	}

	e := export.Exporter{
		Dir:       a.cfg.OutputDir,
		Version:   a.cfg.AttackVersion,
		Format:    a.cfg.Format,
		DerivedID: a.cfg.AttackID,
		Workers:   a.cfg.Workers,
		Logger:    a.logger,
	}
	paths, err := e.Export(cmd.Context(), sheets)
	if err != nil {
		return err
	}
	a.logger.Info("done", "objects", stats.Objects, "types", stats.Types, "files", len(paths), "dir", e.VersionDir())
	return nil
}
