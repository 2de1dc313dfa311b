package main

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gemlabs/gem-platform/internal/config"
	"github.com/gemlabs/gem-platform/internal/entity"
	"github.com/gemlabs/gem-platform/internal/infra/backend"
	"github.com/gemlabs/gem-platform/internal/infra/cache"
	"github.com/gemlabs/gem-platform/internal/infra/database"
	"github.com/gemlabs/gem-platform/internal/infra/filestore"
	"github.com/gemlabs/gem-platform/internal/infra/http/handlers"
	"github.com/gemlabs/gem-platform/internal/infra/http/middleware"
	"github.com/gemlabs/gem-platform/internal/infra/logger"
	"github.com/gemlabs/gem-platform/internal/infra/mail"
	"github.com/gemlabs/gem-platform/internal/infra/queue"
	"github.com/gemlabs/gem-platform/internal/infra/worker"
	"github.com/gemlabs/gem-platform/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	// Every dependency is optional: a missing credential degrades the
	// feature instead of failing startup.

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Warn("database unavailable, read paths will use fallbacks", zap.Error(err))
			db = nil
		}
	} else {
		log.Warn("DATABASE_URL not set, running without a database")
	}
	if db != nil {
		defer db.Close()
	}

	var rabbit *queue.RabbitMQ
	if cfg.RabbitHost != "" {
		var err error
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
		if err != nil {
			log.Warn("RabbitMQ unavailable, lead events disabled", zap.Error(err))
			rabbit = nil
		}
	}
	if rabbit != nil {
		defer rabbit.Conn.Close()
		defer rabbit.Ch.Close()
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	// Repositories. The file store backs lead reads when Postgres is gone.
	var leadRepo entity.LeadRepositoryInterface
	var postRepo entity.PostRepositoryInterface
	var scoreRepo entity.FundingScoreRepositoryInterface
	var onboardingRepo entity.OnboardingRepositoryInterface
	var connRepo entity.ConnectionRepositoryInterface
	if db != nil {
		leadRepo = database.NewLeadRepository(db)
		postRepo = database.NewPostRepository(db)
		scoreRepo = database.NewFundingScoreRepository(db)
		onboardingRepo = database.NewOnboardingRepository(db)
		connRepo = database.NewConnectionRepository(db)
	}
	leadFallback := filestore.NewLeadStore(cfg.LeadsFile)

	var searchStore entity.SearchHistoryStore
	if redisClient != nil {
		searchStore = cache.NewRedisSearchHistory(redisClient)
	} else {
		log.Warn("REDIS_ADDR not set, search history is in-memory only")
		searchStore = cache.NewMemorySearchHistory()
	}

	// Remote backend client and queue producer.
	var backendClient *backend.Client
	if cfg.BackendURL != "" {
		backendClient = backend.NewClient(cfg.BackendURL, cfg.BackendAPIKey)
	}

	var producer usecase.QueueProducerInterface
	if rabbit != nil {
		producer = queue.NewProducer(rabbit.Conn, rabbit.Ch)

		mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		var notifier queue.LeadNotifier
		if cfg.MailHost != "" {
			notifier = mailSender
		}
		leadWorker := queue.NewWorker(rabbit.Ch, notifier, cfg.SalesInbox, log)
		leadWorker.Start(queue.QueueName)
	}

	// Use cases.
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, producer, log)
	manageUC := usecase.NewManageLeadsUseCase(leadRepo, leadFallback, cfg.DemoMode)
	scoreUC := usecase.NewFundingScoreUseCase(scoreRepo)
	wizardUC := usecase.NewOnboardingUseCase(onboardingRepo, cfg.AllowSkip)

	var exchanger usecase.TokenExchanger
	if backendClient != nil {
		exchanger = backendClient
	}
	connectUC := usecase.NewConnectPlatformUseCase(connRepo, exchanger)

	// Background sweep for lapsed OAuth tokens.
	if connRepo != nil {
		expiryWorker := worker.NewConnectionExpiryWorker(connRepo, log)
		go expiryWorker.Start(context.Background())
	}

	// Handlers.
	leadHandler := handlers.NewLeadHandler(captureUC)
	adminHandler := handlers.NewAdminLeadsHandler(manageUC)
	scoreHandler := handlers.NewFundingScoreHandler(scoreUC)
	onboardingHandler := handlers.NewOnboardingHandler(wizardUC)
	connHandler := handlers.NewConnectionHandler(connectUC, onboardingRepo, cfg.SiteURL)
	proxyHandler := handlers.NewProxyHandler(backendClient, cfg.DemoMode, log)
	searchHandler := handlers.NewSearchHistoryHandler(searchStore)

	var rabbitConn *amqp.Connection
	if rabbit != nil {
		rabbitConn = rabbit.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, redisClient, cfg.BackendURL)

	var postHandler *handlers.PostHandler
	if postRepo != nil {
		postHandler = handlers.NewPostHandler(postRepo)
	}

	// Router.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.SiteURL, "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID", "X-Admin-Password"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads", leadHandler.CaptureLead)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.AdminPassword))
			r.Get("/leads", adminHandler.ListLeads)
			r.Get("/leads/analytics", adminHandler.Analytics)
			r.Put("/leads/{id}", adminHandler.UpdateLead)
			r.Delete("/leads/{id}", adminHandler.DeleteLead)
		})

		r.Get("/funding-score", scoreHandler.Current)
		r.Get("/funding-score/history", scoreHandler.History)
		r.Post("/funding-score/recompute", scoreHandler.Recompute)

		r.Get("/onboarding/state", onboardingHandler.State)
		r.Post("/onboarding/next", onboardingHandler.Next)
		r.Post("/onboarding/back", onboardingHandler.Back)
		r.Post("/onboarding/skip", onboardingHandler.Skip)

		if postHandler != nil {
			r.Post("/posts", postHandler.CreatePost)
			r.Get("/posts", postHandler.ListPosts)
			r.Get("/posts/{id}", postHandler.GetPost)
			r.Post("/posts/{id}/like", postHandler.LikePost)
			r.Post("/posts/{id}/comments", postHandler.CreateComment)
			r.Get("/posts/{id}/comments", postHandler.ListComments)
		}

		r.Get("/connections/{platform}", connHandler.Get)
		r.Get("/connections/{platform}/callback", connHandler.Callback)
		r.Delete("/connections/{platform}", connHandler.Disconnect)

		r.Post("/generate-listing", proxyHandler.GenerateListing)
		r.Post("/upload", proxyHandler.Upload)
		r.Get("/platform/stats", proxyHandler.PlatformStats)

		r.Get("/search-history", searchHandler.Get)
		r.Post("/search-history", searchHandler.Append)
	})

	addr := ":" + cfg.Port
	log.Info("GEM platform API listening", zap.String("addr", addr), zap.String("demo_mode", string(cfg.DemoMode)))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
