package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/crucible-dev/crucible/internal/core/ports/primary"
	"github.com/crucible-dev/crucible/internal/core/services/language"
	"github.com/crucible-dev/crucible/internal/core/services/pipeline"
	"github.com/crucible-dev/crucible/internal/core/services/review"
	"github.com/crucible-dev/crucible/internal/core/services/vote"
	"github.com/crucible-dev/crucible/internal/handlers"
	"github.com/crucible-dev/crucible/internal/handlers/auth"
	"github.com/crucible-dev/crucible/internal/handlers/languages"
	"github.com/crucible-dev/crucible/internal/handlers/reviewcfg"
	"github.com/crucible-dev/crucible/internal/handlers/submissions"
)

type ServiceProvider struct {
	pipelineService pipeline.ISubmissionPipeline
	voteService     vote.IVoteService
	reviewService   review.IReviewConfigService
	resolver        language.ILanguageResolver
	tokenService    primary.TokenService
}

func NewServiceProvider(
	pipelineService pipeline.ISubmissionPipeline,
	voteService vote.IVoteService,
	reviewService review.IReviewConfigService,
	resolver language.ILanguageResolver,
	tokenService primary.TokenService,
) *ServiceProvider {
	return &ServiceProvider{
		pipelineService: pipelineService,
		voteService:     voteService,
		reviewService:   reviewService,
		resolver:        resolver,
		tokenService:    tokenService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()

	auth.NewHandler(s.ServiceProvider.tokenService, s.logger).RegisterRoutes(r)

	// everything under /api requires a bearer token
	api := r.PathPrefix("/api").Subrouter()
	api.Use(handlers.New(s.ServiceProvider.tokenService).JWTMiddleware)

	submissions.
		NewSubmissionHandler(s.ServiceProvider.pipelineService, s.ServiceProvider.voteService, s.logger).
		RegisterRoutes(api)
	languages.NewLanguageHandler(s.ServiceProvider.resolver, s.logger).RegisterRoutes(api)
	reviewcfg.NewReviewConfigHandler(s.ServiceProvider.reviewService, s.logger).RegisterRoutes(api)

	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
