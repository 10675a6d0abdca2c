package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/cgsoftworks/leadbook/internal/config"
	"github.com/cgsoftworks/leadbook/internal/infra/database"
	"github.com/cgsoftworks/leadbook/internal/infra/http/handlers"
	"github.com/cgsoftworks/leadbook/internal/infra/http/middleware"
	"github.com/cgsoftworks/leadbook/internal/infra/integration/recaptcha"
	"github.com/cgsoftworks/leadbook/internal/infra/mail"
	"github.com/cgsoftworks/leadbook/internal/infra/queue"
	"github.com/cgsoftworks/leadbook/internal/infra/security"
	"github.com/cgsoftworks/leadbook/internal/infra/worker"
	"github.com/cgsoftworks/leadbook/internal/usecase"
	"github.com/cgsoftworks/leadbook/internal/util"
)

func main() {
	cfg := config.Load()

	logger, err := util.InitLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.ApplyMigrations(context.Background(), db); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}

	// Repositories
	accountRepo := database.NewAccountRepository(db)
	leadRepo := database.NewLeadRepository(db)

	// Adapters
	smtpPort, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		logger.Fatal("invalid SMTP_PORT", zap.String("value", cfg.SMTPPort))
	}
	mailSender := mail.NewEmailSender(
		cfg.SMTPHost, smtpPort, cfg.SMTPUser, cfg.SMTPPassword,
		cfg.SMTPFrom, cfg.AppName, cfg.AppLogoURL,
	)

	tokens := security.NewTokenManager(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, issued tokens are not safe for production")
	}

	var captcha usecase.CaptchaVerifierInterface
	if cfg.RecaptchaSecret != "" {
		captcha = recaptcha.NewClient(cfg.RecaptchaSecret)
	} else {
		logger.Warn("RECAPTCHA_SECRET not set, captcha checks disabled")
	}

	// RabbitMQ is optional: without it imports still work, the owner just
	// gets no summary email.
	var events usecase.EventPublisherInterface
	var rabbit *queue.RabbitMQ
	if cfg.RabbitMQURL != "" {
		rabbit, err = queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			logger.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer rabbit.Conn.Close()
		defer rabbit.Ch.Close()

		events = queue.NewProducer(rabbit.Conn, rabbit.Ch)

		summaryWorker := queue.NewWorker(rabbit.Ch, mailSender, logger)
		go summaryWorker.Start(queue.QueueName)
	} else {
		logger.Warn("RABBITMQ_URL not set, import summary emails disabled")
	}

	// Use cases
	registerUC := usecase.NewRegisterAccountUseCase(accountRepo, mailSender, captcha)
	verifyOTPUC := usecase.NewVerifyOTPUseCase(accountRepo)
	resendOTPUC := usecase.NewResendVerificationOTPUseCase(accountRepo, mailSender)
	loginUC := usecase.NewLoginUseCase(accountRepo, tokens)
	forgotPasswordUC := usecase.NewForgotPasswordUseCase(accountRepo, mailSender, captcha)
	resetPasswordUC := usecase.NewResetPasswordUseCase(accountRepo, captcha)
	settingsUC := usecase.NewAccountSettingsUseCase(accountRepo)

	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo)
	listLeadsUC := usecase.NewListLeadsUseCase(leadRepo)
	updateLeadUC := usecase.NewUpdateLeadUseCase(leadRepo)
	deleteLeadUC := usecase.NewDeleteLeadUseCase(leadRepo)
	bulkImportUC := usecase.NewBulkImportLeadsUseCase(leadRepo, accountRepo, events)

	// Handlers
	authHandler := handlers.NewAuthHandler(
		registerUC, verifyOTPUC, resendOTPUC, loginUC,
		forgotPasswordUC, resetPasswordUC, settingsUC,
	)
	leadHandler := handlers.NewLeadHandler(
		createLeadUC, listLeadsUC, updateLeadUC, deleteLeadUC, bulkImportUC,
	)
	var rabbitConn *amqp091.Connection
	if rabbit != nil {
		rabbitConn = rabbit.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// Background reminder sweep
	reminderWorker := worker.NewFollowUpReminderWorker(leadRepo, accountRepo, mailSender, logger)
	go reminderWorker.Start(context.Background())

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/verify-otp", authHandler.HandleVerifyOTP)
		r.Post("/resend-verification-otp", authHandler.HandleResendOTP)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/forgot-password", authHandler.HandleForgotPassword)
		r.Post("/reset-password", authHandler.HandleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))
			r.Get("/profile", authHandler.HandleGetProfile)
			r.Put("/update-password", authHandler.HandleUpdatePassword)
			r.Put("/update-profile", authHandler.HandleUpdateProfile)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Auth(tokens))
		r.Post("/", leadHandler.HandleCreate)
		r.Get("/", leadHandler.HandleList)
		r.Post("/bulk-upload", leadHandler.HandleBulkUpload)
		r.Put("/{id}", leadHandler.HandleUpdate)
		r.Delete("/{id}", leadHandler.HandleDelete)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	logger.Info("server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
