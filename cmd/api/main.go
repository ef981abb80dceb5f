package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/config"
	"github.com/hrms-dev/hrms/backend/internal/handler"
	"github.com/hrms-dev/hrms/backend/internal/notify"
	"github.com/hrms-dev/hrms/backend/internal/repository"
	"github.com/hrms-dev/hrms/backend/internal/service"
	"github.com/hrms-dev/hrms/backend/internal/token"
	"github.com/hrms-dev/hrms/backend/internal/tracing"
	"github.com/hrms-dev/hrms/backend/internal/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * config
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	/**********************************************
	 * tracing (optional)
	 **********************************************/
	if cfg.Tracing.Endpoint != "" {
		tp, err := tracing.InitTracing(context.Background(), cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
		if err != nil {
			logger.Error("failed to initialise tracing", "error", err)
			return
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Error("failed to flush traces", "error", err)
			}
		}()
	}

	/**********************************************
	 * database
	 **********************************************/
	pool, err := repository.NewPool(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}
	defer pool.Close()

	repo := repository.NewRepository(cfg, pool)

	/**********************************************
	 * redis
	 **********************************************/
	rdb := repository.NewRedisClient(cfg)
	defer rdb.Close()

	cache := repository.NewCache(cfg, rdb)

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", "error", err)
		return
	}
	defer ch.Close()

	if _, err := notify.DeclareQueue(ch, cfg.RabbitMQ.Queue); err != nil {
		logger.Error("failed to declare queue", "error", err)
		return
	}

	publisher := notify.NewPublisher(ch, cfg.RabbitMQ.Queue, time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)

	/**********************************************
	 * services
	 **********************************************/
	validator, err := utils.NewValidator()
	if err != nil {
		logger.Error("failed to create validator", "error", err)
		return
	}

	allocator := service.NewIDAllocator(repo, cfg.Employee.IDPrefix, cfg.Employee.IDWidth)
	employees := service.NewEmployeeService(repo, allocator, validator, cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)
	accounts := service.NewAccountService(service.AccountServiceDeps{
		Accounts:      repo,
		Employees:     employees,
		Hasher:        utils.NewBcryptHasher(),
		Tokens:        token.NewIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second),
		Cache:         cache,
		Mailer:        publisher,
		Validator:     validator,
		OTPExpiration: time.Duration(cfg.OTP.Expiration) * time.Second,
	})

	/**********************************************
	 * initial admin
	 **********************************************/
	if err := accounts.EnsureInitialAdmin(context.Background(), cfg.InitialAdmin.Name, cfg.InitialAdmin.Email, cfg.InitialAdmin.Password); err != nil {
		logger.Error("failed to create initial admin", "error", err)
		return
	}

	/**********************************************
	 * handler
	 **********************************************/
	h := handler.NewHandler(cfg, accounts, employees)
	h.RegisterRoutes()

	/**********************************************
	 * HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      otelhttp.NewHandler(h.Mux, "hrms-api"),
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
