package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"moviestore/auth"
	"moviestore/catalog"
	"moviestore/dynamodb"
	"moviestore/httpserver"
	"moviestore/pkg/config"
	"moviestore/pkg/hasher"
	"moviestore/pkg/jwt"
	"moviestore/pkg/logger"
	"moviestore/pkg/sentry"
	"moviestore/postgres"

	sentrygo "github.com/getsentry/sentry-go"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		Development: cfg.IsLocal(),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.ValidateAuth(); err != nil {
		log.Fatalw("invalid auth config", "error", err)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		sentry.Fatal(err)
		log.Fatalw("cannot open postgres connection", "error", err)
	}

	attempts, err := loginAttempts(context.Background(), cfg, db)
	if err != nil {
		sentry.Fatal(err)
		log.Fatalw("cannot open login attempt store", "error", err)
	}

	tokens := jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL())
	authService := auth.NewUsecase(
		auth.NewStaticAccounts(cfg.Auth.Accounts),
		attempts,
		hasher.NewBcrypt(bcrypt.DefaultCost),
		tokens,
		auth.WithLockout(cfg.Auth.MaxRetries, cfg.JailDuration()),
	)

	server := httpserver.Default(cfg)
	server.Addr = ":" + strconv.Itoa(cfg.Port)
	server.Logger = log
	server.Catalog = catalog.NewProvider(db)
	server.AuthService = authService
	server.Tokens = tokens

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("server started", "addr", server.Addr)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

func loginAttempts(ctx context.Context, cfg *config.Config, db *gorm.DB) (auth.LoginAttemptRepository, error) {
	if !cfg.UseDynamoDBAttempts() {
		return postgres.NewLoginAttemptRepository(db), nil
	}

	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		return nil, err
	}
	repo, err := dynamodb.NewLoginAttemptRepository(client, cfg.DynamoDB.LoginAttemptsTable)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
