package app

import (
	"fmt"
	"net/http"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/kickoff-tournaments/internal/config"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/bracket"
	"github.com/riskibarqy/kickoff-tournaments/internal/domain/tournament"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/clubservice"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/jobqueue"
	"github.com/riskibarqy/kickoff-tournaments/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/kickoff-tournaments/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/kickoff-tournaments/internal/platform/id"
	"github.com/riskibarqy/kickoff-tournaments/internal/platform/logging"
	"github.com/riskibarqy/kickoff-tournaments/internal/usecase"
)

type repositories struct {
	tournaments  tournament.Repository
	brackets     bracket.Repository
	availability tournament.AvailabilityRepository
	close        func() error
}

// NewHTTPServer wires the service. The returned cleanup releases the worker
// pool and the database handle and must run after the server has stopped.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(cfg, logger.Named("repository"))
	if err != nil {
		return nil, nil, err
	}

	clubs := clubservice.NewClient(clubservice.ClientConfig{
		BaseURL:        cfg.ClubServiceBaseURL,
		Timeout:        cfg.ClubServiceTimeout,
		MaxRetries:     cfg.ClubServiceMaxRetries,
		Logger:         logger.Named("clubservice"),
		CircuitBreaker: cfg.ClubServiceCircuit,
	})

	anubisClient := anubis.NewClient(anubis.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AnubisTimeout},
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		CacheTTL:       cfg.AnubisCacheTTL,
		CacheMax:       cfg.CacheMaxEntries,
		CircuitBreaker: cfg.AnubisCircuit,
		Logger:         logger.Named("anubis"),
	})

	pool, err := ants.NewPool(max(cfg.RatingWorkers, 1))
	if err != nil {
		_ = repos.close()
		return nil, nil, fmt.Errorf("create rating worker pool: %w", err)
	}

	jobs := usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		jobs = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker:   cfg.QStashCircuit,
		}, logger.Named("jobqueue"))
	} else {
		logger.Info("qstash disabled, failed rating updates will not be retried")
	}

	ratings := usecase.NewRatingUpdater(clubs, pool, jobs, logger.Named("rating")).
		WithRetryDelay(cfg.RatingRetryDelay)

	tournaments := usecase.NewTournamentService(usecase.TournamentDependencies{
		Tournaments:  repos.tournaments,
		Brackets:     repos.brackets,
		Availability: repos.availability,
		Eligibility:  usecase.NewEligibilityChecker(clubs, clubs),
		Roles:        clubs,
		Ratings:      ratings,
		IDGen:        idgen.NewUUIDGenerator(),
		Logger:       logger.Named("tournament"),
	})

	handler := httpapi.NewHandler(tournaments, ratings, logger.Named("httpapi"))
	router := httpapi.NewRouter(
		handler,
		anubisClient,
		logger.Named("http"),
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	cleanup := func() {
		pool.Release()
		if err := repos.close(); err != nil {
			logger.Warn("close repositories failed", "error", err)
		}
	}

	return server, cleanup, nil
}

func withCache(cfg config.Config, repos repositories) repositories {
	if !cfg.CacheEnabled {
		return repos
	}
	cachedTournaments := cache.NewTournamentRepository(repos.tournaments, cfg.CacheTTL, cfg.CacheMaxEntries)
	repos.tournaments = cachedTournaments
	repos.brackets = cache.NewBracketRepository(repos.brackets, cachedTournaments)
	return repos
}
