package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/truest-construction/site-backend/api"
	"github.com/truest-construction/site-backend/auth"
	"github.com/truest-construction/site-backend/config"
	"github.com/truest-construction/site-backend/database"
	"github.com/truest-construction/site-backend/models"
	"github.com/truest-construction/site-backend/services"
	"github.com/truest-construction/site-backend/site"
)

type options struct {
	demo bool
	env  map[string]string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "site-backend",
		Short:         "Tru-Est Construction website and content admin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warn().Err(err).Msg("error loading .env file")
			}
			opts.env = config.New()
			configureLogging(opts.env)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	root.PersistentFlags().BoolVar(&opts.demo, "demo", false, "use a seeded in-memory sqlite database instead of DB_TYPE")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Serve the public site and the admin API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(opts)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or alter every table to match the models",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := openDatabase(opts)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.Migrate(); err != nil {
					return err
				}
				log.Info().Msg("migration complete")
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Provision default pages, sample services and the services callout",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := openDatabase(opts)
				if err != nil {
					return err
				}
				defer db.Close()
				return migrateAndSeed(cmd.Context(), db)
			},
		},
		newGenerateCmd(opts),
	)

	return root
}

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		outPath    string
		reportOnly bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate gorm/gen query helpers and print the column mismatch report",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(opts)
			if err != nil {
				return err
			}
			defer db.Close()

			if reportOnly {
				_, err := models.GenerateColumnMismatchReport(db.DB(), cmd.OutOrStdout())
				return err
			}
			return models.GenerateModels(db.DB(), outPath, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "./query", "directory for generated query code")
	cmd.Flags().BoolVar(&reportOnly, "report-only", false, "only print the column mismatch report")
	return cmd
}

func runServe(opts *options) error {
	c := opts.env

	db, err := openDatabase(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.demo {
		if err := migrateAndSeed(context.Background(), db); err != nil {
			return err
		}
	}

	deps, err := dependencies(c, db, opts.demo)
	if err != nil {
		return err
	}

	server, err := api.NewServer(c, deps)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)
	return nil
}

func dependencies(c map[string]string, db database.Database, demo bool) (api.Dependencies, error) {
	policy := auth.NewAdminPolicy(config.GetStrings(c, "ADMIN_EMAILS"))
	if policy.Len() == 0 {
		log.Warn().Msg("ADMIN_EMAILS is empty; nobody can use the admin area")
	}

	secret := config.GetString(c, "SESSION_SECRET", "")
	if secret == "" && demo {
		secret = uuid.NewString() + uuid.NewString()
		log.Warn().Msg("SESSION_SECRET not set; using a throwaway secret for the demo")
	}
	sessions, err := auth.NewSessionManager(secret, time.Duration(config.GetInt(c, "SESSION_TTL_HOURS", 24))*time.Hour)
	if err != nil {
		return api.Dependencies{}, fmt.Errorf("SESSION_SECRET: %w", err)
	}

	var provider auth.Provider
	if clientID := config.GetString(c, "GOOGLE_CLIENT_ID", ""); clientID != "" {
		provider = auth.NewGoogleProvider(
			clientID,
			config.GetString(c, "GOOGLE_CLIENT_SECRET", ""),
			config.GetString(c, "OAUTH_REDIRECT_URL", "http://localhost:8080/auth/callback"),
		)
	} else {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set; admin sign-in is disabled")
	}

	siteName := config.GetString(c, "SITE_NAME", "Tru-Est Construction")
	renderer, err := site.NewRenderer(siteName)
	if err != nil {
		return api.Dependencies{}, err
	}

	return api.Dependencies{
		Database:        db,
		Policy:          policy,
		Sessions:        sessions,
		Provider:        provider,
		Notifier:        services.NotifierFromEnv(c, log.With().Str("component", "notifier").Logger()),
		Renderer:        renderer,
		SecureCookies:   config.GetBool(c, "SECURE_COOKIES", !demo),
		AcceptedOrigins: config.GetStrings(c, "ACCEPTED_ORIGINS"),
	}, nil
}

func openDatabase(opts *options) (database.Database, error) {
	if opts.demo {
		log.Info().Msg("using in-memory sqlite database")
		db, err := database.OpenInMemory()
		if err != nil {
			return database.Database{}, err
		}
		return database.New(db), nil
	}

	cfg, err := database.ConfigFromEnv(opts.env)
	if err != nil {
		return database.Database{}, err
	}
	log.Info().Str("dbType", cfg.Type).Msg("connecting to database")
	db, err := database.Open(cfg)
	if err != nil {
		return database.Database{}, err
	}
	return database.New(db), nil
}

func migrateAndSeed(ctx context.Context, db database.Database) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := db.Migrate(); err != nil {
		return err
	}
	result, err := db.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	log.Info().
		Int("pages", result.Pages).
		Int("services", result.Services).
		Int("callouts", result.Callouts).
		Msg("seed complete")
	return nil
}

// configureLogging picks the level from LOG_LEVEL and switches to console output when LOG_FORMAT=console.
func configureLogging(c map[string]string) {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(strings.ToLower(config.GetString(c, "LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.GetString(c, "LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
