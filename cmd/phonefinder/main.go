package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/thesavant42/phonefinder/internal/config"
	"github.com/thesavant42/phonefinder/internal/db"
	"github.com/thesavant42/phonefinder/internal/phone"
	"github.com/thesavant42/phonefinder/internal/session"
	"github.com/thesavant42/phonefinder/internal/spam"
	"github.com/thesavant42/phonefinder/internal/ui"
)

// rootCmd runs the interactive TUI when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "phonefinder",
	Short: "Look up phone numbers, score them for spam and contribute caller details.",
	Long: `phonefinder resolves a phone number to its country, region, carrier, timezone and
line type, estimates how likely it is to be spam, and lets you contribute a name,
city and carrier for it. Records and search history last for the current session only.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return ui.Run(a.session, ui.Options{
			HighSpamThreshold: a.cfg.HighSpamThreshold,
			ExportDir:         a.cfg.ExportDir,
			Logger:            a.logger,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("noise", false, "Add random noise (up to 0.1) to spam scores")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("export-dir", "", "Directory for JSON exports")
	rootCmd.PersistentFlags().Bool("no-seed", false, "Start with an empty record store")

	rootCmd.AddCommand(lookupCmd, contributeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

// app holds everything one invocation needs
type app struct {
	cfg     config.Config
	logger  *log.Logger
	closer  io.Closer
	db      *db.DB
	session *session.Session
}

// newApp loads config, applies flag overrides and wires the session
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return nil, err
	}

	logger, closer, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	database, err := db.New()
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var opts []spam.Option
	if cfg.SpamNoise {
		opts = append(opts, spam.WithRandomNoise())
	}

	resolver := phone.NewResolver(cfg.Language, cfg.MetadataCacheTTL, logger)
	s := session.New(database, resolver, spam.NewScorer(opts...), logger)

	if cfg.SeedDemo {
		if err := s.Seed(session.DemoRecords); err != nil {
			database.Close()
			closer.Close()
			return nil, err
		}
	}

	logger.Debug("session ready",
		"language", cfg.Language,
		"noise", cfg.SpamNoise,
		"seeded", cfg.SeedDemo)

	return &app{
		cfg:     cfg,
		logger:  logger,
		closer:  closer,
		db:      database,
		session: s,
	}, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("noise") {
		cfg.SpamNoise, _ = flags.GetBool("noise")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir, _ = flags.GetString("export-dir")
	}
	if noSeed, _ := flags.GetBool("no-seed"); noSeed {
		cfg.SeedDemo = false
	}
	return cfg.Validate()
}

// Close releases the database and the log file
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "err", err)
	}
	a.closer.Close()
}
