package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"github.com/souvik0908/sei-sense/internal/app/service"
	"github.com/souvik0908/sei-sense/internal/app/tooling"
	llmclient "github.com/souvik0908/sei-sense/internal/client"
	"github.com/souvik0908/sei-sense/internal/infrastructure/configloader"
	chainclient "github.com/souvik0908/sei-sense/internal/infrastructure/network/client"
	"github.com/souvik0908/sei-sense/internal/infrastructure/network/registry"
	"github.com/souvik0908/sei-sense/internal/infrastructure/restapi"
	"github.com/souvik0908/sei-sense/internal/infrastructure/toolserver"
	"github.com/souvik0908/sei-sense/internal/pkg/logger"
	"github.com/souvik0908/sei-sense/internal/pkg/utils"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

func main() {
	// .env is optional, deployments usually set the environment directly
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	appLogger := logger.NewSlogAdapter()

	networkRegistry, err := registry.NewRegistry(appLogger, cfg.Chain.DefaultNetwork, cfg.Chain.RPCOverrides)
	if err != nil {
		zapLogger.Fatal("Failed to initialize network registry", zap.Error(err))
	}

	clientProvider := chainclient.NewEVMClientProvider(cfg, networkRegistry, appLogger.Info, appLogger.Error)

	readService := service.NewChainReadService(clientProvider, appLogger)
	tokenService := service.NewTokenService(clientProvider, appLogger, time.Duration(cfg.Tokens.MetadataCacheTTLMinutes)*time.Minute)
	historyService := service.NewHistoryService(clientProvider, appLogger, cfg)
	analysisService := service.NewAnalysisService(readService, historyService, appLogger)
	transferService := service.NewTransferService(clientProvider, tokenService, appLogger)
	zapLogger.Info("Chain services initialized")

	toolRegistry := tooling.NewRegistry(appLogger)
	tooling.RegisterChainTools(toolRegistry, networkRegistry, readService, tokenService, historyService, analysisService, transferService)
	zapLogger.Info("Tool catalog registered", zap.Int("tools", len(toolRegistry.Specs())))

	llmClient := llmclient.NewOpenAICompatibleClient(
		cfg.LLM.BaseURL,
		cfg.LLM.APIKey(),
		cfg.LLM.Model,
		time.Duration(cfg.LLM.RequestTimeoutMillis)*time.Millisecond,
		cfg.LLM.MaxRetries,
		time.Duration(cfg.LLM.RetryDelayMillis)*time.Millisecond,
		zapLogger,
	)
	agentService := service.NewAgentService(llmClient, toolRegistry, appLogger)
	zapLogger.Info("Agent gateway initialized", zap.String("model", cfg.LLM.Model))

	restHandler := restapi.NewHandler(
		networkRegistry,
		readService,
		tokenService,
		historyService,
		analysisService,
		transferService,
		agentService,
		appLogger,
	)
	router := restapi.SetupRouter(restHandler, zapLogger)

	sessionRegistry := toolserver.NewSessionRegistry(appLogger)
	toolServer := toolserver.NewToolServer(
		sessionRegistry,
		toolRegistry,
		time.Duration(cfg.ToolServer.HeartbeatSeconds)*time.Second,
		appLogger,
	)
	toolServer.RegisterRoutes(router)

	// Swagger documentation if enabled
	if cfg.Swagger.Enabled {
		router.StaticFile("/docs/swagger.yaml", cfg.Swagger.SpecPath)
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
		zapLogger.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	// Pprof endpoints (for debugging performance issues)
	// Make sure to protect these in a production environment
	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/block", gin.WrapH(pprof.Handler("block")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pprofRouter.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
		pprofRouter.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
	}
	zapLogger.Info("Pprof endpoints enabled under /debug/pprof")

	// No WriteTimeout: the tool protocol stream holds its connection open
	// for the whole session.
	srv := &http.Server{
		Addr:        cfg.Server.Port,
		Handler:     router,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	sessionRegistry.CloseAll()

	zapLogger.Info("Server exiting")
}
