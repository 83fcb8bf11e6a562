package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yieldhop/internal/app/provider"
	"yieldhop/internal/app/service"
	"yieldhop/internal/domain/entity"
	"yieldhop/internal/infrastructure/configloader"
	"yieldhop/internal/infrastructure/metrics"
	clientprovider "yieldhop/internal/infrastructure/network/client"
	networkdefinition "yieldhop/internal/infrastructure/network/definition"
	"yieldhop/internal/infrastructure/prefstore"
	"yieldhop/internal/infrastructure/restapi"
	"yieldhop/internal/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zapLogger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger.InitSlog(zapLogger, cfg.Logging.Level)

	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Staking gateway starting", "config", configPath)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	chainProvider, err := networkdefinition.NewChainDefinitionProvider(appLogger, cfg.Chains)
	if err != nil {
		logger.Fatal("Failed to build chain definitions", "error", err)
	}
	clientProvider := clientprovider.NewEVMClientProvider(cfg, appLogger.Info, appLogger.Error, m)
	fallbackProvider := provider.NewStaticFallbackProvider(chainProvider)
	fetcher := service.NewSnapshotFetcher(chainProvider, clientProvider, appLogger)

	defaultChain := entity.ChainKey(cfg.Views.DefaultChain)
	stakingViews := service.NewStakingViewService(fetcher, fallbackProvider, chainProvider, service.StakingViewOptions{
		DefaultChain:    defaultChain,
		SessionTTL:      time.Duration(cfg.Views.SessionTTLMinutes) * time.Minute,
		CleanupInterval: time.Duration(cfg.Views.CleanupIntervalMinutes) * time.Minute,
	}, m, appLogger)
	portfolioService := service.NewPortfolioService(chainProvider, fetcher, fallbackProvider, m, appLogger)
	actionService := service.NewActionService(chainProvider, clientProvider, service.ActionOptions{
		DefaultChain:    defaultChain,
		PendingTTL:      time.Duration(cfg.Actions.PendingTTLMinutes) * time.Minute,
		CleanupInterval: time.Duration(cfg.Views.CleanupIntervalMinutes) * time.Minute,
		ConfirmTimeout:  time.Duration(cfg.Actions.ConfirmTimeoutSeconds) * time.Second,
		ReceiptPoll:     time.Duration(cfg.Actions.ReceiptPollMs) * time.Millisecond,
	}, m, appLogger)

	store, err := prefstore.Open(cfg.Preferences.Path)
	if err != nil {
		logger.Fatal("Failed to open preference store", "path", cfg.Preferences.Path, "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close preference store", "error", err)
		}
	}()
	themeService, err := service.NewThemeService(ctx, store, appLogger)
	if err != nil {
		logger.Fatal("Failed to load theme preference", "error", err)
	}
	navigationService := service.NewNavigationService()

	if cfg.Poller.Enabled {
		poller := service.NewRefreshPoller(
			stakingViews,
			provider.NewWalletProvider(cfg.Poller.WalletsFile, appLogger),
			defaultChain,
			time.Duration(cfg.Poller.IntervalSeconds)*time.Second,
			appLogger,
		)
		go poller.Run(ctx)
	}

	handlers := restapi.Handlers{
		Staking:     restapi.NewStakingHandler(stakingViews, chainProvider, appLogger),
		Portfolio:   restapi.NewPortfolioHandler(portfolioService, chainProvider),
		Actions:     restapi.NewActionHandler(actionService, appLogger),
		Preferences: restapi.NewPreferenceHandler(themeService),
		Navigation:  restapi.NewNavigationHandler(navigationService),
	}
	routerOpts := restapi.RouterOptions{
		AllowOrigins: cfg.Server.AllowOrigins,
		Metrics:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	if cfg.Swagger.Enabled {
		routerOpts.SwaggerSpecFile = cfg.Swagger.SpecFile
	}
	router := restapi.SetupRouter(handlers, routerOpts)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped.")
	}

	zapLogger.Info("Staking gateway stopped", zap.String("config", configPath))
}
