package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"preorder-service/internal/client"
	"preorder-service/internal/config"
	"preorder-service/internal/logger"
	"preorder-service/internal/repository"
	"preorder-service/internal/server"
	"preorder-service/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connect to database", zap.Error(err))
	}

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	bankRepo := repository.NewBankRepository(db)
	bundleRepo := repository.NewBundleRepository(db)

	timing := service.Timing{
		PaymentWindow: cfg.Order.PaymentWindow,
		PollInterval:  cfg.Order.PollInterval,
	}
	proofPolicy := service.ProofPolicy{
		MaxBytes:     cfg.Proof.MaxBytes,
		AllowedTypes: cfg.Proof.AllowedTypes,
	}

	orderService := service.NewOrderService(db, orderRepo, paymentRepo, bundleRepo, timing, log)
	paymentService := service.NewPaymentService(db, orderRepo, paymentRepo, bankRepo, proofPolicy, log)
	verificationService := service.NewVerificationService(db, orderRepo, paymentRepo, log)
	bankService := service.NewBankService(bankRepo, log)

	srv := server.NewServer(orderService, paymentService, verificationService, bankService, cfg.Auth.JWTSecret)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
