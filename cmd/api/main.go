package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/infra/config"
	"github.com/xavierca1/barsaude-crm/internal/infra/database"
	"github.com/xavierca1/barsaude-crm/internal/infra/http/handlers"
	"github.com/xavierca1/barsaude-crm/internal/infra/http/middleware"
	"github.com/xavierca1/barsaude-crm/internal/infra/logger"
	"github.com/xavierca1/barsaude-crm/internal/infra/mail"
	"github.com/xavierca1/barsaude-crm/internal/infra/queue"
	"github.com/xavierca1/barsaude-crm/internal/infra/whatsapp"
	"github.com/xavierca1/barsaude-crm/internal/infra/worker"
	"github.com/xavierca1/barsaude-crm/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg)

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	templates, err := config.NewTemplateTable(nil)
	if err != nil {
		logrus.Fatalf("invalid message templates: %v", err)
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	historyRepo := database.NewStatusChangeRepository(db)
	ruleRepo := database.NewAutomationRuleRepository(db)
	reminderRepo := database.NewSentReminderRepository(db)

	// 2. Gateways and adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	preparer := whatsapp.NewPreparer()

	// 3. UseCases
	clock := usecase.SystemClock{}
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, historyRepo, mailSender, clock)
	manageLeadUC := usecase.NewManageLeadUseCase(leadRepo, historyRepo, clock)
	reserveUC := usecase.NewReserveLeadUseCase(leadRepo, clock)
	importUC := usecase.NewImportLeadsUseCase(leadRepo, historyRepo, producer, clock)
	followUpUC := usecase.NewFollowUpUseCase(
		leadRepo, ruleRepo, historyRepo, reminderRepo,
		mailSender, preparer, templates, clock,
	)

	// 4. Workers
	importWorker := queue.NewWorker(rabbitMQ.Ch, importUC)
	go importWorker.Start(queue.QueueName)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewReservationSweeper(db, cfg.SweepInterval)
	go sweeper.Start(rootCtx)

	scanner := worker.NewFollowUpScanner(followUpUC, cfg.ScanSpec)
	if err := scanner.Start(); err != nil {
		logrus.Fatalf("failed to start follow-up scanner: %v", err)
	}
	defer scanner.Stop()

	// 5. Handlers
	captureHandler := handlers.NewCaptureHandler(createLeadUC)
	leadHandler := handlers.NewLeadHandler(leadRepo, historyRepo, createLeadUC, manageLeadUC)
	reservationHandler := handlers.NewReservationHandler(reserveUC)
	automationHandler := handlers.NewAutomationHandler(ruleRepo, templates)
	importHandler := handlers.NewImportHandler(importUC)
	reminderHandler := handlers.NewReminderHandler(reminderRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.MailHost)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/capture", captureHandler.Handle)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator([]byte(cfg.JWTSecret)))

		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Get("/leads/{leadId}", leadHandler.HandleGet)
		r.Put("/leads/{leadId}", leadHandler.HandleUpdate)
		r.Post("/leads/{leadId}/status", leadHandler.HandleChangeStatus)
		r.Post("/leads/{leadId}/score", leadHandler.HandleSetScore)
		r.Get("/leads/{leadId}/history", leadHandler.HandleHistory)
		r.Post("/leads/{leadId}/reserve", reservationHandler.HandleClaim)
		r.Delete("/leads/{leadId}/reserve", reservationHandler.HandleRelease)
		r.Get("/reminders", reminderHandler.HandleList)
		r.Get("/automation-rules", automationHandler.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleSupervisor, entity.RoleAdmin))
			r.Post("/leads/import", importHandler.Handle)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleAdmin))
			r.Delete("/leads/{leadId}", leadHandler.HandleDelete)
			r.Post("/leads/bulk-delete", leadHandler.HandleBulkDelete)
			r.Post("/automation-rules", automationHandler.HandleCreate)
			r.Put("/automation-rules/{ruleId}", automationHandler.HandleUpdate)
			r.Delete("/automation-rules/{ruleId}", automationHandler.HandleDelete)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logrus.Infof("🔥 BarSaude CRM listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
		os.Exit(1)
	}
}
