package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/crucible-dev/crucible/internal/adapter/crypto"
	"github.com/crucible-dev/crucible/internal/adapter/judge0"
	"github.com/crucible-dev/crucible/internal/adapter/logging"
	"github.com/crucible-dev/crucible/internal/adapter/postgres/submissionrepository"
	"github.com/crucible-dev/crucible/internal/adapter/redis/reviewfeed"
	"github.com/crucible-dev/crucible/internal/config"
	"github.com/crucible-dev/crucible/internal/core/services/language"
	"github.com/crucible-dev/crucible/internal/core/services/pipeline"
	"github.com/crucible-dev/crucible/internal/core/services/review"
	"github.com/crucible-dev/crucible/internal/core/services/risk"
	"github.com/crucible-dev/crucible/internal/core/services/vote"
	logger2 "github.com/crucible-dev/crucible/internal/global/logger"
	http2 "github.com/crucible-dev/crucible/internal/http"
)

func main() {
	InitReader()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger2.Info("Starting submission review service")

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.DebugMode)

	db, err := setupDatabase(sysCfg.PostgresConfig)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	defer redisClient.Close()

	// SECONDARY PORTS
	submissionStore := submissionrepository.NewSubmissionRepository(db, logger)
	backend := judge0.NewClient(sysCfg.BackendConfig, logger)
	feed := reviewfeed.NewPublisher(redisClient, logger)

	// primary ports
	tokenService := crypto.NewTokenService(sysCfg.JwtConfig)

	// services
	scorer := risk.NewRiskScorer(sysCfg.PipelineConfig)
	resolver := language.NewLanguageResolver(backend, logger)
	pipelineSvc := pipeline.NewSubmissionPipeline(
		submissionStore, backend, scorer, resolver, feed, feed, logger, sysCfg.PipelineConfig)
	voteSvc := vote.NewVoteService(submissionStore, logger)
	reviewSvc := review.NewReviewConfigService(submissionStore, logger)

	serviceProvider := http2.NewServiceProvider(pipelineSvc, voteSvc, reviewSvc, resolver, tokenService)

	httpServer := http2.NewServer(8082, "submissionReview", *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}

	ctxBg := context.Background()
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown server")
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
