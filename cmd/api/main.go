package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	httpadp "approvals-engine/internal/adapter/http"
	idempotency "approvals-engine/internal/adapter/middleware"
	"approvals-engine/internal/adapter/repository/mysql"
	"approvals-engine/internal/config"
	"approvals-engine/internal/domain/approval"
	"approvals-engine/internal/infrastructure/cache"
	"approvals-engine/internal/infrastructure/db"
	"approvals-engine/internal/infrastructure/logger"
	"approvals-engine/internal/infrastructure/metrics"
	ucAdjustment "approvals-engine/internal/usecase/adjustment"
	ucApproval "approvals-engine/internal/usecase/approval"
	"approvals-engine/internal/usecase/resolver"
	"approvals-engine/pkg/clock"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "approvals-engine")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal("invalid timezone", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("mysql", zap.Error(err))
	}
	if err := mysql.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tx := mysql.NewGormUoW(gdb)
	clk := clock.NewSystem(loc)
	wait := approval.WaitingPeriod{Years: cfg.WaitingPeriodYears}

	routes := httpadp.Routes{
		Health:      httpadp.NewHandler(),
		Approvals:   httpadp.NewApprovalHandler(ucApproval.NewUsecase(tx, clk, cfg.ApprovalNumberPrefix, log.Named("approval"), m)),
		Adjustments: httpadp.NewAdjustmentHandler(ucAdjustment.NewUsecase(tx, clk, log.Named("adjustment"), m)),
		Resolutions: httpadp.NewResolutionHandler(resolver.New(tx, clk, wait, log.Named("resolver"), m)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	// routes
	routes.Register(e, idempotency.Idempotency(rdb, cfg.IdempotencyTTL(), log.Named("idempotency")))
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("stopped")
}
