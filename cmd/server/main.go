// Command server runs the converse-server HTTP API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"converse-server/internal/config"
	"converse-server/internal/domain/conversation"
	"converse-server/internal/domain/user"
	"converse-server/internal/domain/workout"
	"converse-server/internal/infrastructure/auth"
	"converse-server/internal/infrastructure/completion"
	"converse-server/internal/infrastructure/database"
	"converse-server/internal/infrastructure/database/repository/conversationrepo"
	"converse-server/internal/infrastructure/database/repository/userrepo"
	"converse-server/internal/infrastructure/database/repository/workoutrepo"
	"converse-server/internal/infrastructure/logger"
	"converse-server/internal/infrastructure/observability"
	"converse-server/internal/infrastructure/search"
	"converse-server/internal/interfaces/httpserver"
	"converse-server/internal/interfaces/httpserver/handlers/authhandler"
	"converse-server/internal/interfaces/httpserver/handlers/chathandler"
	"converse-server/internal/interfaces/httpserver/handlers/searchhandler"
	"converse-server/internal/interfaces/httpserver/handlers/workouthandler"
	authroute "converse-server/internal/interfaces/httpserver/routes/auth"
	v1 "converse-server/internal/interfaces/httpserver/routes/v1"
	chatroute "converse-server/internal/interfaces/httpserver/routes/v1/chat"
	searchroute "converse-server/internal/interfaces/httpserver/routes/v1/search"
	workoutroute "converse-server/internal/interfaces/httpserver/routes/v1/workout"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	tokens, err := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenIssuer, cfg.TokenLifetime)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager setup failed")
	}

	// Domain services on top of gorm repositories.
	conversations := conversation.NewService(conversationrepo.NewConversationGormRepository(db))
	users := user.NewService(userrepo.NewUserGormRepository(db))
	workouts := workout.NewService(workoutrepo.NewWorkoutGormRepository(db))

	// Outbound provider clients.
	searcher := search.NewClient(cfg.SearchBaseURL, cfg.SearchAPIKey, cfg.HTTPTimeout)
	completer := completion.NewClient(cfg.CompletionBaseURL, cfg.CompletionAPIKey, completion.Options{
		Model:       cfg.CompletionModel,
		MaxTokens:   cfg.CompletionMaxTokens,
		Temperature: cfg.CompletionTemperature,
	}, cfg.HTTPTimeout)

	server := httpserver.NewHTTPServer(
		v1.NewV1Route(
			searchroute.NewSearchRoute(searchhandler.NewSearchHandler(conversations, searcher, completer, cfg.SearchMaxResults)),
			chatroute.NewChatRoute(chathandler.NewChatHandler(conversations, completer, cfg.ChatPromptMaxMessages)),
			workoutroute.NewWorkoutRoute(workouthandler.NewWorkoutHandler(workouts)),
			tokens,
			users,
			log,
		),
		authroute.NewAuthRoute(authhandler.NewAuthHandler(users, tokens)),
		db,
		cfg,
		log,
	)

	group, _ := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Int("port", cfg.HTTPPort).Str("version", config.Version).Msg("starting http server")
		return server.Run()
	})
	group.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		log.Info().Int("port", cfg.MetricsPort).Msg("starting metrics server")
		return http.ListenAndServe(fmt.Sprintf(":%d", cfg.MetricsPort), mux)
	})

	if err := group.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
