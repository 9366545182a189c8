package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/mentoria-leads/internal/config"
	"github.com/xavierca1/mentoria-leads/internal/infra/database"
	"github.com/xavierca1/mentoria-leads/internal/infra/http/handlers"
	appmiddleware "github.com/xavierca1/mentoria-leads/internal/infra/http/middleware"
	"github.com/xavierca1/mentoria-leads/internal/infra/integration/google"
	"github.com/xavierca1/mentoria-leads/internal/infra/mail"
	"github.com/xavierca1/mentoria-leads/internal/infra/queue"
	"github.com/xavierca1/mentoria-leads/internal/infra/worker"
	"github.com/xavierca1/mentoria-leads/internal/usecase"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("❌ Configuração inválida")
	}
	if err := cfg.Log.Configure(); err != nil {
		log.WithError(err).Fatal("❌ Configuração de log inválida")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// 1. Banco
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("❌ Falha ao conectar no Postgres")
		}
		defer db.Close()
	} else {
		log.Warn("⚠️ DATABASE_URL vazio: rotas /api desativadas")
	}

	// 2. RabbitMQ + worker de confirmação
	var rabbitMQ *queue.RabbitMQ
	var producer usecase.QueueProducerInterface
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.WithError(err).Fatal("❌ Falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()

		producer = queue.NewProducer(rabbitMQ.Ch)

		mailSender := mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Pass, cfg.Mail.From)
		confirmationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		g.Go(func() error {
			return confirmationWorker.Start(ctx, queue.QueueName)
		})
	} else {
		log.Warn("⚠️ RABBITMQ_URL vazio: confirmações por email desativadas")
	}

	// 3. Google Sheets
	googleHTTP := &http.Client{Timeout: cfg.Google.HTTPTimeout}
	tokenClient := google.NewTokenClient(googleHTTP)
	sheetsClient := google.NewSheetsClient(googleHTTP, cfg.Google.SpreadsheetID, cfg.Google.SheetName)
	exportLeadUC := usecase.NewExportLeadUseCase(cfg.Credential(), tokenClient, sheetsClient)

	// 4. Handlers
	sheetsHandler := handlers.NewSheetsHandler(exportLeadUC)

	var dbPinger handlers.Pinger
	if db != nil {
		dbPinger = db
	}
	var mqState handlers.ConnectionState
	if rabbitMQ != nil {
		mqState = rabbitMQ
	}
	healthHandler := handlers.NewHealthHandler(dbPinger, mqState, cfg.GoogleConfigured())

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.Metrics)

	// O handler do Sheets cuida do próprio CORS (inclusive OPTIONS sem segredos).
	r.Post("/send-to-sheets", sheetsHandler.Handle)
	r.Options("/send-to-sheets", sheetsHandler.Handle)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	if db != nil {
		appRepo := database.NewApplicationRepository(db)
		appointmentRepo := database.NewAppointmentRepository(db)

		staleWorker := worker.NewStaleApplicationWorker(appRepo)
		g.Go(func() error {
			staleWorker.Start(ctx)
			return nil
		})

		applicationHandler := handlers.NewApplicationHandler(
			usecase.NewSaveProgressUseCase(appRepo),
			usecase.NewCompleteApplicationUseCase(appRepo, appointmentRepo, exportLeadUC, producer),
			usecase.NewAvailableSlotsUseCase(appointmentRepo),
		)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"http://localhost:5173", "*"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"},
			}))

			r.Post("/aplicacoes/progresso", applicationHandler.SaveProgress)
			r.Post("/aplicacoes/{id}/concluir", applicationHandler.Complete)
			r.Get("/agenda/horarios", applicationHandler.AvailableSlots)
			r.Get("/agenda/datas", applicationHandler.AvailableDates)
		})
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("🔥 Server de leads da mentoria rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Encerrando...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("❌ Servidor encerrado com erro")
	}
}
