package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"github.com/Adv-2005/DocuGenAI/common/id"
	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/common/otel"
	"github.com/Adv-2005/DocuGenAI/core/config"
	"github.com/Adv-2005/DocuGenAI/core/db"
	"github.com/Adv-2005/DocuGenAI/internal/flow"
	"github.com/Adv-2005/DocuGenAI/internal/http/middleware"
	httprouter "github.com/Adv-2005/DocuGenAI/internal/http/router"
	"github.com/Adv-2005/DocuGenAI/internal/scm"
	"github.com/Adv-2005/DocuGenAI/internal/service"
	"github.com/Adv-2005/DocuGenAI/internal/store"
)

var githubOAuthScopes = []string{"repo", "read:user"}

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider when enabled)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "docugen starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected")

	provider, err := llm.NewProvider(ctx, llm.Config{
		Provider: llm.ProviderName(cfg.LLM.Provider),
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create llm provider", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "llm provider ready", "provider", provider.Name(), "model", provider.Model())

	orchestrator := flow.New(
		llm.NewInvoker(provider, cfg.LLM.Timeout),
		flow.WithMaxTokens(cfg.LLM.MaxTokens),
		flow.WithTemperature(cfg.LLM.TemperaturePtr()),
	)

	githubHost, err := scm.NewGitHubHost(scm.GitHubOptions{
		BaseURL:   cfg.SCM.GitHubAPIURL,
		UserAgent: cfg.SCM.UserAgent,
		Timeout:   cfg.SCM.Timeout,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create github host", "error", err)
		os.Exit(1)
	}
	hosts := scm.NewHosts(githubHost, scm.GitLabOptions{
		BaseURL: cfg.SCM.GitLabBaseURL,
		Timeout: cfg.SCM.Timeout,
	})

	var githubOAuth *oauth2.Config
	if cfg.GitHubOAuth.Enabled() {
		githubOAuth = &oauth2.Config{
			ClientID:     cfg.GitHubOAuth.ClientID,
			ClientSecret: cfg.GitHubOAuth.ClientSecret,
			RedirectURL:  cfg.GitHubOAuth.RedirectURL,
			Scopes:       githubOAuthScopes,
			Endpoint:     github.Endpoint,
		}
	} else {
		slog.InfoContext(ctx, "github oauth disabled, only personal access tokens can be connected")
	}

	services := service.NewServices(service.Deps{
		Stores:           store.NewStores(database.Queries()),
		Sessions:         store.NewRedisSessionStore(redisClient),
		TxRunner:         service.NewTxRunner(database),
		Identity:         service.NewWorkOSIdentityProvider(cfg.WorkOS, ""),
		Hosts:            hosts,
		GitHubOAuth:      githubOAuth,
		Orchestrator:     orchestrator,
		Registry:         flow.DefaultRegistry(),
		SessionTTL:       cfg.SessionTTL,
		BatchConcurrency: cfg.Flows.BatchConcurrency,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services,
		httprouter.HealthCheckFunc(database.Ping),
		httprouter.HealthCheckFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
	)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, checkers ...httprouter.HealthChecker) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		DashboardURL:   cfg.DashboardURL,
		IsProduction:   cfg.IsProduction(),
		FlowRateLimit:  cfg.Flows.RateLimitRPS,
		FlowRateBurst:  cfg.Flows.RateLimitBurst,
		HealthCheckers: checkers,
	})

	return router
}

const banner = `
 ____                    ____             _    ___
|  _ \  ___   ___ _   _ / ___| ___ _ __  / \  |_ _|
| | | |/ _ \ / __| | | | |  _ / _ \ '_ \/ _ \  | |
| |_| | (_) | (__| |_| | |_| |  __/ | | / ___ \ | |
|____/ \___/ \___|\__,_|\____|\___|_| |_/_/   \_\___|
`
