package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/leyuan/sportdesk/external/coingecko"
	"github.com/leyuan/sportdesk/external/espn"
	"github.com/leyuan/sportdesk/external/footballdata"
	"github.com/leyuan/sportdesk/external/fundgz"
	"github.com/leyuan/sportdesk/external/nba"
	"github.com/leyuan/sportdesk/external/pandascore"
	"github.com/leyuan/sportdesk/external/polymarket"
	"github.com/leyuan/sportdesk/external/sina"
	"github.com/leyuan/sportdesk/internal/config"
	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/finance"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/domain/settings"
	cacherepo "github.com/leyuan/sportdesk/internal/infrastructure/repository/cache"
	"github.com/leyuan/sportdesk/internal/infrastructure/repository/memory"
	"github.com/leyuan/sportdesk/internal/infrastructure/repository/postgres"
	"github.com/leyuan/sportdesk/internal/interfaces/httpapi"
	"github.com/leyuan/sportdesk/internal/platform/cache"
	"github.com/leyuan/sportdesk/internal/platform/logging"
	"github.com/leyuan/sportdesk/internal/platform/resilience"
	"github.com/leyuan/sportdesk/internal/usecase"
)

// App bundles the HTTP server with the background refresher and the
// resources that need an orderly shutdown.
type App struct {
	Server    *http.Server
	Refresher *usecase.RefreshService

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	clients := buildProviderClients(cfg, logger)

	matchSvc := usecase.NewMatchService(repos.snapshots, repos.settings, clients.matchSources(), memory.Fallback, logger)
	favoriteSvc := usecase.NewFavoriteService(repos.favorites, matchSvc, logger)
	rosterSvc := clients.rosterService(repos.snapshots, logger)
	financeSvc := clients.financeService(repos.watchlist, logger)

	refresher := usecase.NewRefreshService(matchSvc, financeSvc, cfg.DefaultRefreshInterval, logger)
	settingsSvc := usecase.NewSettingsService(repos.settings, refresher, logger)

	handler := httpapi.NewHandler(matchSvc, favoriteSvc, rosterSvc, financeSvc, settingsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:    server,
		Refresher: refresher,
		db:        db,
	}, nil
}

// Close releases resources that outlive the HTTP server.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

type repositories struct {
	snapshots match.SnapshotRepository
	favorites favorite.Repository
	watchlist finance.WatchlistRepository
	settings  settings.Repository
}

// buildRepositories picks Postgres persistence when DB_URL is set and
// the in-memory stores otherwise, then layers the TTL cache on top.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var repos repositories
	var db *sqlx.DB

	if cfg.DBURL != "" {
		conn, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open database: %w", err)
		}
		db = conn
		repos = repositories{
			snapshots: postgres.NewSnapshotRepository(db),
			favorites: postgres.NewFavoriteRepository(db),
			watchlist: postgres.NewWatchlistRepository(db),
			settings:  postgres.NewSettingsRepository(db),
		}
		logger.Info("storage configured", "backend", "postgres", "database", dbNameFromURL(cfg.DBURL))
	} else {
		repos = repositories{
			snapshots: memory.NewSnapshotRepository(),
			favorites: memory.NewFavoriteRepository(),
			watchlist: memory.NewWatchlistRepository(),
			settings:  memory.NewSettingsRepository(),
		}
		logger.Info("storage configured", "backend", "memory")
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.snapshots = cacherepo.NewSnapshotRepository(repos.snapshots, store)
		repos.favorites = cacherepo.NewFavoriteRepository(repos.favorites, store)
		repos.watchlist = cacherepo.NewWatchlistRepository(repos.watchlist, store)
		repos.settings = cacherepo.NewSettingsRepository(repos.settings, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, db, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// providerClients holds one client per enabled upstream. A nil client
// means the provider is disabled and its tier is skipped.
type providerClients struct {
	nba          *nba.Client
	espn         *espn.Client
	footballData *footballdata.Client
	polymarket   *polymarket.Client
	pandaScore   *pandascore.Client
	coinGecko    *coingecko.Client
	sina         *sina.Client
	fundGZ       *fundgz.Client
}

func buildProviderClients(cfg config.Config, logger *logging.Logger) providerClients {
	var clients providerClients

	if cfg.NBA.Enabled {
		clients.nba = nba.NewClient(nba.Config{
			BaseURL:        cfg.NBA.BaseURL,
			Timeout:        cfg.NBA.Timeout,
			MaxRetries:     cfg.NBA.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.NBA),
		})
	}
	if cfg.ESPN.Enabled {
		clients.espn = espn.NewClient(espn.Config{
			BaseURL:        cfg.ESPN.BaseURL,
			Timeout:        cfg.ESPN.Timeout,
			MaxRetries:     cfg.ESPN.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.ESPN),
			WindowDays:     cfg.FootballWindowDays,
		})
	}
	if cfg.FootballData.Enabled {
		clients.footballData = footballdata.NewClient(footballdata.Config{
			BaseURL:        cfg.FootballData.BaseURL,
			Token:          cfg.FootballData.Token,
			Timeout:        cfg.FootballData.Timeout,
			MaxRetries:     cfg.FootballData.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.FootballData),
			WindowDays:     cfg.FootballWindowDays,
		})
	}
	if cfg.Polymarket.Enabled {
		clients.polymarket = polymarket.NewClient(polymarket.Config{
			BaseURL:        cfg.Polymarket.BaseURL,
			Timeout:        cfg.Polymarket.Timeout,
			MaxRetries:     cfg.Polymarket.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.Polymarket),
			LiveCutoff:     cfg.EsportsLiveCutoff,
			MaxAge:         cfg.EsportsMaxAge,
		})
	}
	if cfg.PandaScore.Enabled {
		clients.pandaScore = pandascore.NewClient(pandascore.Config{
			BaseURL:        cfg.PandaScore.BaseURL,
			Token:          cfg.PandaScore.Token,
			Timeout:        cfg.PandaScore.Timeout,
			MaxRetries:     cfg.PandaScore.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.PandaScore),
		})
	}
	if cfg.CoinGecko.Enabled {
		clients.coinGecko = coingecko.NewClient(coingecko.Config{
			BaseURL:        cfg.CoinGecko.BaseURL,
			Timeout:        cfg.CoinGecko.Timeout,
			MaxRetries:     cfg.CoinGecko.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.CoinGecko),
		})
	}
	if cfg.Sina.Enabled {
		clients.sina = sina.NewClient(sina.Config{
			BaseURL:        cfg.Sina.BaseURL,
			Referer:        cfg.SinaReferer,
			Timeout:        cfg.Sina.Timeout,
			MaxRetries:     cfg.Sina.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.Sina),
		})
	}
	if cfg.FundGZ.Enabled {
		clients.fundGZ = fundgz.NewClient(fundgz.Config{
			BaseURL:        cfg.FundGZ.BaseURL,
			Timeout:        cfg.FundGZ.Timeout,
			MaxRetries:     cfg.FundGZ.MaxRetries,
			Logger:         logger,
			CircuitBreaker: circuitConfig(cfg.FundGZ),
		})
	}

	return clients
}

func (c providerClients) matchSources() usecase.MatchSources {
	sources := usecase.MatchSources{}
	if c.nba != nil {
		sources.NBA = c.nba
	}
	if c.espn != nil {
		sources.ESPN = c.espn
	}
	if c.footballData != nil {
		sources.FootballData = c.footballData
	}
	if c.polymarket != nil {
		sources.Polymarket = c.polymarket
	}
	if c.pandaScore != nil {
		sources.PandaScore = c.pandaScore
	}
	return sources
}

type footballRosterSource interface {
	FetchMatchRoster(ctx context.Context, leagueSlug, eventID, homeTeam, awayTeam string) ([]match.PlayerStat, []match.PlayerStat, error)
	FetchTeamSquad(ctx context.Context, leagueSlug, teamID, teamName string) ([]match.PlayerStat, error)
}

type esportsRosterSource interface {
	FetchTeamPlayers(ctx context.Context, teamName, game string) ([]match.PlayerStat, error)
}

func (c providerClients) rosterService(snapshots match.SnapshotRepository, logger *logging.Logger) *usecase.RosterService {
	var football footballRosterSource
	if c.espn != nil {
		football = c.espn
	}
	var esports esportsRosterSource
	if c.pandaScore != nil {
		esports = c.pandaScore
	}
	return usecase.NewRosterService(snapshots, football, esports, logger)
}

type cryptoQuoteSource interface {
	FetchPrices(ctx context.Context, ids []string) ([]finance.Item, error)
	Search(ctx context.Context, query string) ([]finance.SearchResult, error)
}

type marketQuoteSource interface {
	FetchGoldSilver(ctx context.Context) ([]finance.Item, error)
	FetchStockCN(ctx context.Context, codes []string) ([]finance.Item, error)
	FetchStockUS(ctx context.Context, symbols []string) ([]finance.Item, error)
}

type fundQuoteSource interface {
	FetchFunds(ctx context.Context, codes []string) ([]finance.Item, error)
}

func (c providerClients) financeService(watchlist finance.WatchlistRepository, logger *logging.Logger) *usecase.FinanceService {
	var crypto cryptoQuoteSource
	if c.coinGecko != nil {
		crypto = c.coinGecko
	}
	var quotes marketQuoteSource
	if c.sina != nil {
		quotes = c.sina
	}
	var funds fundQuoteSource
	if c.fundGZ != nil {
		funds = c.fundGZ
	}
	return usecase.NewFinanceService(watchlist, crypto, quotes, funds, logger)
}

func circuitConfig(p config.Provider) resilience.CircuitBreakerConfig {
	return resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
		Enabled:          p.CircuitEnabled,
		FailureThreshold: p.CircuitFailureCount,
		OpenTimeout:      p.CircuitOpenTimeout,
		HalfOpenMaxReq:   p.CircuitHalfOpenMaxReq,
	})
}
