package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/kailas-cloud/talentbridge/internal/config"
	"github.com/kailas-cloud/talentbridge/internal/db/migrations"
	"github.com/kailas-cloud/talentbridge/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/talentbridge/internal/db/redis"
	"github.com/kailas-cloud/talentbridge/internal/domain"
	"github.com/kailas-cloud/talentbridge/internal/domain/auth"
	"github.com/kailas-cloud/talentbridge/internal/domain/discovery"
	logpkg "github.com/kailas-cloud/talentbridge/internal/logger"
	"github.com/kailas-cloud/talentbridge/internal/metrics"
	"github.com/kailas-cloud/talentbridge/internal/repository/embcache"
	searchrepo "github.com/kailas-cloud/talentbridge/internal/repository/search"
	startuprepo "github.com/kailas-cloud/talentbridge/internal/repository/startup"
	"github.com/kailas-cloud/talentbridge/internal/storage/s3"
	"github.com/kailas-cloud/talentbridge/internal/tracing"
	chiTransport "github.com/kailas-cloud/talentbridge/internal/transport/chi"
	"github.com/kailas-cloud/talentbridge/internal/transport/oidc"
	openaiEmb "github.com/kailas-cloud/talentbridge/internal/transport/openai"
	"github.com/kailas-cloud/talentbridge/internal/usecase/certificate"
	discoveryuc "github.com/kailas-cloud/talentbridge/internal/usecase/discovery"
	embeddinguc "github.com/kailas-cloud/talentbridge/internal/usecase/embedding"
	healthuc "github.com/kailas-cloud/talentbridge/internal/usecase/health"
	searchuc "github.com/kailas-cloud/talentbridge/internal/usecase/search"
	"github.com/kailas-cloud/talentbridge/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting talentbridge API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("search_ranking", cfg.Search.Ranking),
		zap.String("search_failure_policy", cfg.Search.FailurePolicy),
	)

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version.Version,
	})
	if err != nil {
		logger.Fatal("Failed to set up tracing", zap.Error(err))
	}

	// Postgres read model
	gateway, err := postgres.Open(postgres.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() { _ = gateway.Close() }()

	if err := gateway.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	if cfg.Database.Migrate {
		if err := migrations.Up(gateway.DB(), logger); err != nil {
			logger.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Register metrics explicitly (no init())
	metrics.Register(prometheus.DefaultRegisterer)

	healthSvc := healthuc.New(gateway)

	// Popular searches and embedding cache (optional)
	var (
		ranks searchuc.RankStore
		cache *dbRedis.Store
	)
	if addrs := nonEmpty(cfg.Redis.Addrs); len(addrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{Addrs: addrs, Password: cfg.Redis.Password})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer store.Close()
		// Pass the interface only when configured: a typed nil *Store would not compare equal to nil.
		ranks = store
		cache = store
		healthSvc.With(healthuc.Redis, store)
		logger.Info("Popular searches enabled", zap.Strings("redis_addrs", addrs))
	}

	// Object storage (optional)
	var (
		signer chiTransport.LogoSigner
		logos  *certificate.Logos
	)
	if cfg.Storage.Bucket != "" {
		objects, err := s3.New(ctx, s3.Config{
			Endpoint:     cfg.Storage.Endpoint,
			Region:       cfg.Storage.Region,
			Bucket:       cfg.Storage.Bucket,
			AccessKey:    cfg.Storage.AccessKey,
			SecretKey:    cfg.Storage.SecretKey,
			UsePathStyle: cfg.Storage.UsePathStyle,
		})
		if err != nil {
			logger.Fatal("Failed to create object storage client", zap.Error(err))
		}
		signer = objects
		healthSvc.With(healthuc.Storage, objects)
		if len(cfg.Storage.CertificateLogos) > 0 {
			logos = certificate.NewLogos(objects, cfg.Storage.CertificateLogos)
		}
	}

	// Relevance scorer
	var scoreEmbedder domain.BatchEmbedder
	if cfg.Search.Ranking == searchuc.ScorerEmbedding {
		provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
		healthSvc.With(healthuc.Embedding, healthuc.PingerFunc(provider.HealthCheck))

		scoreEmbedder = embeddinguc.NewChunkedEmbedder(provider,
			cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.MaxBatchSize, logger)
		if cache != nil && cfg.Embedding.CacheTTLSec > 0 {
			scoreEmbedder = embcache.New(scoreEmbedder, cache, embcache.Config{
				KeyPrefix: cfg.Redis.KeyPrefix,
				Model:     cfg.Embedding.Model,
				TTL:       time.Duration(cfg.Embedding.CacheTTLSec) * time.Second,
			}, metrics.EmbeddingCacheTotal, logger)
			logger.Info("Embedding cache enabled", zap.Int("ttl_sec", cfg.Embedding.CacheTTLSec))
		}
	}
	scorer, err := searchuc.NewScorer(cfg.Search.Ranking, scoreEmbedder)
	if err != nil {
		logger.Fatal("Failed to create scorer", zap.Error(err))
	}

	// Session verification
	var verifier chiTransport.SessionVerifier
	if cfg.Auth.OIDC.IssuerURL != "" {
		v, err := oidc.NewVerifier(ctx, oidc.Config{
			IssuerURL: cfg.Auth.OIDC.IssuerURL,
			ClientID:  cfg.Auth.OIDC.ClientID,
			RoleClaim: cfg.Auth.OIDC.RoleClaim,
		})
		if err != nil {
			logger.Fatal("Failed to create OIDC verifier", zap.Error(err))
		}
		verifier = v
	}
	tokens, err := staticTokens(cfg.Auth.APITokens)
	if err != nil {
		logger.Fatal("Invalid api tokens", zap.Error(err))
	}
	if verifier == nil && len(tokens) == 0 {
		logger.Warn("No OIDC issuer or api tokens configured: every /api route will answer 401")
	}

	// Use case services
	discoverySvc := discoveryuc.New(startuprepo.New(gateway), discoveryuc.Config{
		Weights: discovery.Weights{
			Views:  cfg.Ranking.Weights.Views,
			Likes:  cfg.Ranking.Weights.Likes,
			Shares: cfg.Ranking.Weights.Shares,
		},
		CategoryBoost:      cfg.Ranking.CategoryBoost,
		TrendingWindowDays: cfg.Ranking.TrendingWindowDays,
	})
	searchSvc := searchuc.New(searchrepo.New(gateway), ranks, scorer, searchuc.Config{
		FailurePolicy:     searchuc.FailurePolicy(cfg.Search.FailurePolicy),
		PopularKey:        cfg.Redis.KeyPrefix + "popular_searches",
		PopularMaxEntries: cfg.Redis.PopularMaxEntries,
	}, logger)

	shaper := chiTransport.NewShaper(signer, time.Duration(cfg.Storage.PresignTTLSec)*time.Second, logger)
	server := chiTransport.NewServer(discoverySvc, searchSvc, logos, healthSvc, shaper, logger).
		WithStrictFilters(cfg.Search.StrictFilters)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.AuthMiddleware(tokens, verifier, logger))
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "talentbridge"),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("Error flushing traces", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func staticTokens(in []config.APIToken) (map[string]chiTransport.StaticToken, error) {
	out := make(map[string]chiTransport.StaticToken, len(in))
	for _, t := range in {
		role, ok := auth.ParseRole(t.Role)
		if !ok {
			return nil, fmt.Errorf("api token %q: unknown role %q", t.Name, t.Role)
		}
		out[t.Token] = chiTransport.StaticToken{Name: t.Name, Role: role}
	}
	return out, nil
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			fields := []zap.Field{zap.String("request_id", requestID)}
			if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
				fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
			}
			reqLogger := logger.With(fields...)
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
