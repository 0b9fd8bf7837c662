package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/chaeyoungson/goalgirls/external/broadcast"
	"github.com/chaeyoungson/goalgirls/external/notify"
	"github.com/chaeyoungson/goalgirls/internal/config"
	"github.com/chaeyoungson/goalgirls/internal/domain/coach"
	"github.com/chaeyoungson/goalgirls/internal/domain/forum"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/domain/player"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
	cacherepo "github.com/chaeyoungson/goalgirls/internal/infrastructure/repository/cache"
	"github.com/chaeyoungson/goalgirls/internal/infrastructure/repository/memory"
	"github.com/chaeyoungson/goalgirls/internal/infrastructure/repository/postgres"
	"github.com/chaeyoungson/goalgirls/internal/interfaces/httpapi"
	basecache "github.com/chaeyoungson/goalgirls/internal/platform/cache"
	idgen "github.com/chaeyoungson/goalgirls/internal/platform/id"
	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
	"github.com/chaeyoungson/goalgirls/internal/platform/resilience"
	"github.com/chaeyoungson/goalgirls/internal/usecase"
)

type repositories struct {
	matches match.Repository
	events  matchevent.Repository
	teams   team.Repository
	players player.Repository
	coaches coach.Repository
	posts   forum.Repository
}

// NewHTTPServer wires repositories, services and the router into a ready
// http.Server. The returned cleanup closes the database handle when the
// postgres driver is active.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var readCache *basecache.Store
	var invalidator usecase.ReadModelInvalidator
	if cfg.CacheEnabled {
		readCache = basecache.NewStore(cfg.CacheTTL)
		invalidator = cacherepo.NewInvalidator(readCache)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, readCache)
		repos.events = cacherepo.NewEventRepository(repos.events, readCache)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, readCache)
	}

	matchSvc := usecase.NewMatchService(repos.matches, repos.events)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players)
	playerSvc := usecase.NewPlayerService(repos.players)
	statsSvc := usecase.NewStatsService(repos.matches, repos.events, repos.teams, repos.players, readCache, logger)
	forumSvc := usecase.NewForumService(repos.teams, repos.posts)
	coachSvc := usecase.NewCoachService(repos.matches, repos.coaches, repos.events)
	draftDesk := usecase.NewDraftDesk(repos.matches, idgen.NewRandomGenerator("draft_"))

	submissionSvc := usecase.NewSubmissionService(repos.matches, repos.events, logger)
	if invalidator != nil {
		submissionSvc.SetReadModelInvalidator(invalidator)
	}
	if cfg.NotifyEnabled {
		submissionSvc.SetResultAnnouncer(notify.NewPublisher(notify.PublisherConfig{
			WebhookURL: cfg.NotifyWebhookURL,
			Timeout:    cfg.NotifyTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NotifyCircuitEnabled,
				FailureThreshold: cfg.NotifyCircuitFailureCount,
				OpenTimeout:      cfg.NotifyCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NotifyCircuitHalfOpenMaxReq,
			},
		}, logger))
	}

	var episodeLister usecase.EpisodeLister
	if cfg.BroadcastEnabled {
		episodeLister = broadcast.NewClient(broadcast.ClientConfig{
			BaseURL: cfg.BroadcastBaseURL,
			Timeout: cfg.BroadcastTimeout,
			Logger:  logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.BroadcastCircuitEnabled,
				FailureThreshold: cfg.BroadcastCircuitFailureCount,
				OpenTimeout:      cfg.BroadcastCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.BroadcastCircuitHalfOpenMaxReq,
			},
		})
	}
	episodeSvc := usecase.NewEpisodeService(episodeLister)

	handler := httpapi.NewHandler(
		matchSvc,
		teamSvc,
		playerSvc,
		statsSvc,
		forumSvc,
		coachSvc,
		episodeSvc,
		draftDesk,
		submissionSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("postgres storage ready", "db", dbNameFromURL(cfg.DBURL))
		return repositories{
			matches: postgres.NewMatchRepository(db),
			events:  postgres.NewEventRepository(db),
			teams:   postgres.NewTeamRepository(db),
			players: postgres.NewPlayerRepository(db),
			coaches: postgres.NewCoachRepository(db),
			posts:   postgres.NewForumRepository(db),
		}, func() { _ = db.Close() }, nil
	default:
		logger.Info("in-memory storage ready", "seeded", true)
		return repositories{
			matches: memory.NewMatchRepository(memory.SeedMatches()),
			events:  memory.NewEventRepository(),
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			coaches: memory.NewCoachRepository(memory.SeedCoaches()),
			posts:   memory.NewForumRepository(),
		}, func() {}, nil
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}
