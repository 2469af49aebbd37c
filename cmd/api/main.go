package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"btc-powerlaw/internal/api/handlers"
	"btc-powerlaw/internal/api/middleware"
	"btc-powerlaw/internal/config"
	"btc-powerlaw/internal/data"
	"btc-powerlaw/internal/logger"
	"btc-powerlaw/internal/model"
	"btc-powerlaw/internal/trend"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid server config: %v\n", err)
		os.Exit(2)
	}

	flush, err := logger.Install(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer flush()
	log := zap.L()

	history := loadHistory(cfg.HistoryFile)
	sigmas := trend.NewSigmaCache(history)
	for _, m := range trend.Models() {
		s := sigmas.Get(m)
		log.Info("sigma ready", zap.String("model", string(m.Model)), zap.Float64("sigma", s.Value), zap.Int("samples", s.Samples))
	}

	var live *data.LivePrice
	if cfg.LivePrice {
		live = data.NewLivePrice(data.NewBinancePriceSource(cfg.PriceSymbol), priceCache(cfg), cfg.PriceSymbol)
	} else {
		log.Info("live price disabled; simulations use the trend fallback")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "history_points": len(sigmas.Series())})
	})

	var pricer handlers.LivePricer
	if live != nil {
		pricer = live
	}
	h := handlers.NewHandler(sigmas, pricer)
	h.Register(router.Group("/api/v1"))

	serveStatic(router, cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// loadHistory returns an empty series when the file is missing so the
// dashboard still serves trend lines with fallback sigma.
func loadHistory(path string) model.HistoricalSeries {
	if path == "" {
		return nil
	}
	s, err := data.LoadHistory(path)
	if err != nil {
		zap.L().Warn("price history not loaded; using fallback sigma", zap.String("path", path), zap.Error(err))
		return nil
	}
	first, last := s[0], s[len(s)-1]
	zap.L().Info("price history loaded",
		zap.String("path", path),
		zap.Int("points", len(s)),
		zap.Time("first", first.Date),
		zap.Time("last", last.Date))
	return s
}

func priceCache(cfg *config.ServerConfig) data.PriceCache {
	if cfg.RedisAddr == "" {
		return data.NewMemoryPriceCache(cfg.PriceCacheTTL)
	}
	rc := data.NewRedisPriceCache(cfg.RedisAddr, cfg.PriceCacheTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		zap.L().Warn("redis unreachable; falling back to in-memory price cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rc.Close()
		return data.NewMemoryPriceCache(cfg.PriceCacheTTL)
	}
	zap.L().Info("using redis price cache", zap.String("addr", cfg.RedisAddr))
	return rc
}

// serveStatic serves the built dashboard with SPA fallback, when present.
func serveStatic(router *gin.Engine, staticDir string) {
	if _, err := os.Stat(staticDir); err != nil {
		zap.L().Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
		return
	}
	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(staticDir + "/index.html")
	})
	zap.L().Info("serving static files", zap.String("dir", staticDir))
}
