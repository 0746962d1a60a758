package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/gymdemos/internal/config"
	"github.com/2beens/gymdemos/internal/db"
	"github.com/2beens/gymdemos/internal/demos"
	"github.com/2beens/gymdemos/internal/demos/assets"
	"github.com/2beens/gymdemos/internal/demos/catalog"
	"github.com/2beens/gymdemos/internal/demos/connectivity"
	"github.com/2beens/gymdemos/internal/demos/metadata"
	"github.com/2beens/gymdemos/internal/middleware"
	"github.com/2beens/gymdemos/internal/telemetry/metrics"
	"github.com/2beens/gymdemos/internal/telemetry/tracing"
	"github.com/2beens/gymdemos/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	adminTokenHash    string // bcrypt hash of the token guarding DELETE /cache
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	demosHandler *demos.Handler
	admin        *demos.Admin
	refs         *assets.LocalRefs
	closers      []func() error

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	AdminTokenHash          string
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool

	// Connectivity overrides the network probe, used in tests
	Connectivity connectivity.Checker
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.Setup(params.HoneycombTracingEnabled, "gymdemos")
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		adminTokenHash: params.AdminTokenHash,
		versionInfo:    params.VersionInfo,
		otelShutdown:   otelShutdown,
	}

	var extraCollectors []prometheus.Collector
	if cfg.MetadataBackend == metadata.BackendPostgres {
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			s.shutdownTelemetry()
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			s.dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(extraCollectors...)
	s.metricsManager = metrics.NewManager("gymdemos", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.redisNeeded() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.HoneycombTracingEnabled {
			s.redisClient.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	if err := s.setupDemos(ctx, params.Connectivity); err != nil {
		s.closeResources()
		s.shutdownTelemetry()
		return nil, err
	}

	return s, nil
}

func (s *Server) redisNeeded() bool {
	if s.config.MetadataBackend == metadata.BackendRedis {
		return true
	}
	return s.config.RateLimitAllowedPerMin > 0 && s.config.RedisHost != ""
}

func (s *Server) setupDemos(ctx context.Context, checker connectivity.Checker) error {
	cfg := s.config

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	store, closeStore, err := metadata.Open(ctx, metadata.OpenParams{
		Backend:     cfg.MetadataBackend,
		SQLitePath:  cfg.MetadataSQLitePath,
		PgPool:      s.dbPool,
		RedisClient: s.redisClient,
		MemoSizeMB:  cfg.MetadataMemoSizeMB,
	})
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}
	s.closers = append(s.closers, closeStore)

	fetcher := assets.NewFetcher(assets.NewFetcherParams{
		HttpClient: tracedHttpClient,
		Timeout:    cfg.CatalogTimeout.Duration,
		MaxBytes:   cfg.MaxAssetBytes,
		Metrics:    s.metricsManager,
	})
	cache, closeCache, err := assets.Open(assets.OpenParams{
		Backend: cfg.AssetBackend,
		Dir:     cfg.AssetDir,
		Fetcher: fetcher,
	})
	if err != nil {
		return fmt.Errorf("open asset cache: %w", err)
	}
	s.closers = append(s.closers, closeCache)

	if checker == nil {
		if cfg.OfflineMode {
			log.Warnln("offline mode: catalog will not be contacted")
			checker = connectivity.Static(false)
		} else {
			probe, err := connectivity.NewProbe(
				cfg.CatalogBaseURL,
				connectivity.DefaultDialTimeout,
				cfg.ConnectivityCacheTTL.Duration,
			)
			if err != nil {
				return fmt.Errorf("new connectivity probe: %w", err)
			}
			checker = probe
		}
	}

	catalogClient := catalog.NewClient(catalog.NewClientParams{
		BaseURL:           cfg.CatalogBaseURL,
		HttpClient:        tracedHttpClient,
		Timeout:           cfg.CatalogTimeout.Duration,
		RequestsPerSecond: cfg.CatalogRequestsPerSecond,
		Metrics:           s.metricsManager,
	})

	registry := assets.NewRefRegistry(cfg.PublicBaseURL, cfg.MaxRefs, s.metricsManager)
	s.refs = assets.NewLocalRefs(cache, registry)

	resolver := demos.NewResolver(demos.NewResolverParams{
		Catalog:           catalogClient,
		Store:             store,
		Cache:             cache,
		Refs:              s.refs,
		Connectivity:      checker,
		Metrics:           s.metricsManager,
		MetadataTTL:       cfg.MetadataTTL.Duration,
		ThumbnailFallback: cfg.ThumbnailFallback,
	})
	s.admin = demos.NewAdmin(store, cache, s.refs)
	s.demosHandler = demos.NewHandler(resolver, s.admin, s.refs)

	return nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter().UseEncodedPath()
	r.Use(otelmux.Middleware("gymdemos-router"))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "ok")
	}).Methods("GET").Name("health")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	demosRouter := r.NewRoute().Subrouter()
	if s.redisClient != nil && s.config.RateLimitAllowedPerMin > 0 {
		demosRouter.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"demos",
			s.config.RateLimitAllowedPerMin,
			s.metricsManager,
		))
	}
	s.demosHandler.SetupRoutes(demosRouter, middleware.AdminAuth(s.adminTokenHash))

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.PublicBaseURL))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if released := s.refs.ReleaseAll(); released > 0 {
		log.Debugf("released %d outstanding media refs", released)
	}

	s.closeResources()
	s.shutdownTelemetry()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

// closeResources closes the stores first, then the clients they use.
func (s *Server) closeResources() {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i]())
	}
	s.closers = nil
	if err != nil {
		log.Errorf("failed to close demo stores: %s", err)
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
		s.redisClient = nil
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		s.dbPool = nil
		log.Debugln("db pool closed")
	}
}

func (s *Server) shutdownTelemetry() {
	if s.otelShutdown != nil {
		s.otelShutdown()
		s.otelShutdown = nil
		log.Trace("otel shut down ...")
	}
}
