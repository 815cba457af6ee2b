// Command hbnb runs the HBnB rental API and its maintenance tasks.
//
//	hbnb                 # start the HTTP server (same as "hbnb serve")
//	hbnb migrate         # create or update the database schema
//	hbnb create-admin --email admin@example.com --password secret [--promote]
//	hbnb worker          # consume domain events into the audit log
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hbnb/internal/apperr"
	"hbnb/internal/audit"
	"hbnb/internal/config"
	"hbnb/internal/database"
	"hbnb/internal/logger"
	"hbnb/internal/server"
	"hbnb/internal/services"
	"hbnb/pkg/rabbitmq"
	"hbnb/pkg/tokenstore"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hbnb",
		Short:         "HBnB property rental API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		newMigrateCmd(),
		newCreateAdminCmd(),
		newWorkerCmd(),
	)
	return root
}

// setup loads the configuration, initialises logging and opens the
// database. Every command starts here.
func setup() (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing database")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Configuration & Database ---
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer closeDB(db)
	if err := database.Migrate(db); err != nil {
		return err
	}

	// --- Token Denylist ---
	var denylist services.TokenDenylist = tokenstore.NewMemoryDenylist()
	if cfg.RedisURL != "" {
		redisDenylist, err := tokenstore.NewRedisDenylist(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisDenylist.Close()
		denylist = redisDenylist
		log.Info().Msg("using Redis token denylist")
	} else {
		log.Warn().Msg("REDIS_URL not set, revoked tokens are kept in memory")
	}

	// --- Initialize RabbitMQ Client ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, domain events are disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	app, _ := server.NewApp(server.Deps{
		DB:             db,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		Denylist:       denylist,
		Events:         events,
	})

	// --- Start HTTP Server ---
	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.AppPort).Str("env", cfg.Env).Msg("starting server")
		listenErr <- app.Listen(cfg.AppPort)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer closeDB(db)
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info().Msg("database schema is up to date")
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var (
		in      services.UserInput
		promote bool
	)
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := setup()
			if err != nil {
				return err
			}
			defer closeDB(db)
			if err := database.Migrate(db); err != nil {
				return err
			}

			facade := services.NewFacade(server.NewRepositories(db), services.BcryptHasher{}, nil)
			actor := services.Actor{IsAdmin: true}
			if promote {
				existing, err := facade.GetUserByEmail(cmd.Context(), in.Email)
				switch {
				case err == nil:
					isAdmin := true
					user, err := facade.UpdateUser(cmd.Context(), actor, existing.ID, services.UserPatch{IsAdmin: &isAdmin})
					if err != nil {
						return fmt.Errorf("promoting %s: %w", in.Email, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "promoted %s (%s) to admin\n", user.Email, user.ID)
					return nil
				case !apperr.IsNotFound(err):
					return err
				}
			}

			in.IsAdmin = true
			user, err := facade.CreateUser(cmd.Context(), actor, in)
			if err != nil {
				return fmt.Errorf("creating admin %s: %w", in.Email, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "admin email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "Admin", "admin first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "User", "admin last name")
	cmd.Flags().BoolVar(&promote, "promote", false, "grant admin to an existing account with this email instead of failing")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume domain events into the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			logger.Init(cfg.Env, cfg.LogLevel)
			if cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is required for the worker")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
			if err != nil {
				return err
			}
			defer mqClient.Close()

			recorder := audit.NewRecorder(log.Logger)
			log.Info().Str("queue", rabbitmq.AuditQueue).Msg("starting audit worker")
			return mqClient.Consume(ctx, rabbitmq.AuditQueue, recorder.Handle)
		},
	}
}
