package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"frontoffice/internal/config"
	cronrunner "frontoffice/internal/cron"
	"frontoffice/internal/db"
	"frontoffice/internal/handler"
	"frontoffice/internal/league"
	"frontoffice/internal/logger"
	"frontoffice/internal/models"
	gormrepository "frontoffice/internal/repository/gorm"
	"frontoffice/internal/service"
	"frontoffice/internal/trade"
)

func main() {
	cfgPath := os.Getenv("FO_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FO_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := league.NewRand(seed)
	difficulty := league.ParseDifficulty(cfg.Engine.Difficulty)
	taxLine := decimal.NewFromFloat(cfg.Engine.LuxuryTaxUSD)

	lookup := func(id string) *models.Player {
		p, err := store.GetPlayerByID(context.Background(), id)
		if err != nil {
			return nil
		}
		return p
	}
	pickValue := func(id string) float64 {
		teams, err := store.ListTeams(context.Background())
		if err != nil {
			return 0
		}
		return service.PickValuerFrom(teams, cfg.Engine.SeasonYear)(id)
	}

	tradeEngine, err := trade.NewEngine(difficulty, taxLine, lookup, pickValue, rnd, logger)
	if err != nil {
		logger.Fatal("trade engine init failed", zap.Error(err))
	}

	cycleSvc := &service.CycleService{
		Repo:       store,
		Logger:     logger,
		Engine:     tradeEngine,
		Difficulty: difficulty,
		UserTeam:   cfg.Engine.UserTeam,
		SeasonYear: cfg.Engine.SeasonYear,
		Rand:       rnd,
	}
	proposalSvc := &service.ProposalService{
		Repo:     store,
		Logger:   logger,
		UserTeam: cfg.Engine.UserTeam,
	}
	insightSvc := &service.InsightService{
		Repo:       store,
		Logger:     logger,
		Difficulty: difficulty,
		SeasonYear: cfg.Engine.SeasonYear,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	proposalHandler := &handler.ProposalHandler{Proposals: proposalSvc}
	proposalHandler.Register(engine)
	teamHandler := &handler.TeamHandler{Insights: insightSvc}
	teamHandler.Register(engine)
	cycleHandler := &handler.CycleHandler{Cycles: cycleSvc}
	cycleHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.Daily, func(ctx context.Context) {
			if err := cycleSvc.RunDaily(ctx); err != nil {
				logger.Warn("cron daily cycle failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register daily cycle failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.Weekly, func(ctx context.Context) {
			if err := cycleSvc.RunWeekly(ctx); err != nil {
				logger.Warn("cron weekly cycle failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register weekly cycle failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
