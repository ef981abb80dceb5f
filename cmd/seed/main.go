package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/config"
	"github.com/hrms-dev/hrms/backend/internal/repository"
	"github.com/hrms-dev/hrms/backend/internal/seed"
	"github.com/hrms-dev/hrms/backend/internal/service"
	"github.com/hrms-dev/hrms/backend/internal/token"
	"github.com/hrms-dev/hrms/backend/internal/utils"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "operation (1: random employees, 2: sample employees from CSV, 3: demo hr and employee accounts)")
	flag.IntVar(&n, "n", 5, "number of random employees")
	flag.StringVar(&file, "file", "", "CSV file for -op 2, defaults to the bundled sample")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := repository.NewRepository(cfg, pool)

	validator, err := utils.NewValidator()
	if err != nil {
		logger.Error("failed to create validator", "error", err)
		os.Exit(1)
	}

	allocator := service.NewIDAllocator(repo, cfg.Employee.IDPrefix, cfg.Employee.IDWidth)
	employees := service.NewEmployeeService(repo, allocator, validator, cfg.Pagination.DefaultLimit, cfg.Pagination.MaxLimit)

	switch op {
	case 0:
		logger.Error("no operation given")
	case 1:
		if n <= 0 {
			logger.Error("number of employees must be positive", "n", n)
			return
		}
		inserted := seed.RandomEmployees(ctx, employees, n, cfg.Seed.EmailDomain)
		logger.Info("inserted random employees", slog.Int("count", inserted))
	case 2:
		var r io.Reader
		if file != "" {
			f, err := os.Open(file)
			if err != nil {
				logger.Error("failed to open file", "file", file, "error", err)
				return
			}
			defer f.Close()
			r = f
		}

		inserted, err := seed.SampleEmployees(ctx, employees, r)
		if err != nil {
			logger.Error("failed to read sample employees", "error", err)
			return
		}
		logger.Info("inserted sample employees", slog.Int("count", inserted))
	case 3:
		// mail and session cache are not needed to register accounts
		accounts := service.NewAccountService(service.AccountServiceDeps{
			Accounts:  repo,
			Employees: employees,
			Hasher:    utils.NewBcryptHasher(),
			Tokens:    token.NewIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Second),
			Validator: validator,
		})
		created := seed.DemoAccounts(ctx, accounts, cfg.Seed.EmailDomain)
		logger.Info("created demo accounts", slog.Int("count", created))
	default:
		logger.Error("unknown operation", "op", op)
	}
}
