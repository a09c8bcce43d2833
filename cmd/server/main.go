package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/course_payments/internal/app"
	"github.com/Freeeeeet/course_payments/internal/config"
	"github.com/Freeeeeet/course_payments/internal/controller"
	"github.com/Freeeeeet/course_payments/internal/controller/rest"
	"github.com/Freeeeeet/course_payments/internal/events"
	"github.com/Freeeeeet/course_payments/internal/notify"
	"github.com/Freeeeeet/course_payments/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
	logger.Sync()
}

// run поднимает зависимости и сервер; defer-ы закрывают их при любом выходе
func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting course payments server",
		zap.String("port", cfg.Port),
		zap.String("store", cfg.Store),
		zap.Bool("bot", cfg.BotEnabled()),
		zap.Bool("kafka", cfg.KafkaEnabled()),
		zap.Bool("email", cfg.EmailEnabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer stores.Close()

	// Получатели событий: Kafka, письма плательщику, админ-чат
	var fanout events.Fanout

	if cfg.KafkaEnabled() {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer func() {
			if err := kafka.Close(); err != nil {
				logger.Error("Failed to close kafka writer", zap.Error(err))
			}
		}()
		fanout = append(fanout, kafka)
	}

	if cfg.EmailEnabled() {
		fanout = append(fanout, notify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom, logger))
	}

	var botInstance *bot.Bot
	if cfg.BotEnabled() {
		botInstance, err = bot.New(cfg.TelegramToken)
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}
		fanout = append(fanout, controller.NewAdminNotifier(botInstance, cfg.AdminChatID, logger))
	}

	paymentService := service.NewPaymentService(stores.Payments, fanout,
		service.PaymentOptions{AllowRedecide: cfg.PaymentAllowRedecide}, logger)
	accessService := service.NewAccessService(stores.Payments, stores.Access, fanout, logger)
	reviewService := service.NewReviewService(stores.Payments, stores.Access, stores.Reviews, fanout,
		service.ReviewOptions{RequireAccess: cfg.ReviewRequireAccess}, logger)
	queryService := service.NewQueryService(paymentService, reviewService)

	if botInstance != nil {
		botController := controller.NewBotController(botInstance, paymentService, accessService, queryService, cfg.AdminChatID, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}
		go botController.Start(ctx)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := rest.Options{CORSOrigins: cfg.CORSOrigins}
	if cfg.IsProduction() {
		opts.StaticDir = cfg.StaticDir
	}

	handler := rest.NewHandler(paymentService, accessService, reviewService, queryService, logger)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(handler, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}
