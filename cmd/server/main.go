package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/account"
	"github.com/dustmassingale/ProjectPlanningTool/internal/application/dashboard"
	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/config"
	httprouter "github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http/handlers"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http/middleware"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/persistence/postgres"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/queue"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/security"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/session"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/telemetry"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.RunMigrations(ctx, cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	sessionTTL := time.Duration(cfg.Session.ExpirySecs) * time.Second
	var sessions ports.SessionStore
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, sessionTTL)
	} else {
		log.Warn().Msg("using in-memory sessions; they will not survive a restart")
		sessions = session.NewMemoryStore(sessionTTL)
	}

	var enqueuer ports.TaskEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		enqueuer = asynqEnq
		worker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		enqueuer = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	recorder := telemetry.NewRecorder(log)
	accounts := postgres.NewAccountRepository(pool)
	teams := postgres.NewTeamRepository(pool)
	dashboards := postgres.NewDashboardRepository(pool)

	loginUC := account.NewLogin(accounts, hasher, sessions, recorder)
	joinUC := account.NewJoin(accounts, hasher, sessions, recorder)
	forgotUC := account.NewForgotPassword(accounts, enqueuer, recorder, cfg.PasswordReset.BaseURL, cfg.PasswordReset.ExpirySecs)
	resetUC := account.NewResetPassword(accounts, hasher, recorder)
	switchTeamUC := account.NewSwitchTeam(accounts, teams, sessions, recorder)
	logoutUC := account.NewLogout(sessions)
	dashboardUC := dashboard.NewView(dashboards)

	accountHandler := handlers.NewAccountHandler(
		loginUC, joinUC, forgotUC, resetUC, switchTeamUC, logoutUC,
		recorder, log, !cfg.Secure.IsDevelopment,
	)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC, recorder)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	requireSession := middleware.NewSessionResolver(sessions).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AccountHandler:   accountHandler,
		DashboardHandler: dashboardHandler,
		HealthHandler:    healthHandler,
		RequireSession:   requireSession,
		Log:              log,
		Secure:           secureMiddleware,
		IPRateLimit:      ipLimit,
		Metrics:          true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
