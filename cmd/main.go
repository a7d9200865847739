package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-accounts/docs"
	"github.com/sbilibin2017/gw-accounts/internal/facades"
	"github.com/sbilibin2017/gw-accounts/internal/handlers"
	"github.com/sbilibin2017/gw-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-accounts/internal/logger"
	"github.com/sbilibin2017/gw-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-accounts/internal/repositories"
	"github.com/sbilibin2017/gw-accounts/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost     string
	AppPort     string
	LogLevel    string
	CORSOrigins []string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int

	AccessTokenSecret     string
	AccessTokenExpSecond  int
	RefreshTokenSecret    string
	RefreshTokenExpSecond int

	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string

	MediaUploadTimeoutSecond int
	MediaMaxUploadMB         int

	KafkaBrokers []string
	KafkaTopic   string
}

// @title gw-accounts API
// @version 1.0.0
// @description User accounts service: registration with media upload, JWT sessions with refresh rotation, profile and channel subscriptions
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, token, media and Kafka configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string, dst *int) {
		if err != nil {
			return
		}
		var v int
		if v, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
			return
		}
		*dst = v
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGIN", "http://localhost:*"))

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	getInt("POSTGRES_PORT", "5432", &cfg.PGPort)
	getInt("POSTGRES_MAX_OPEN_CONNS", "16", &cfg.PGMaxOpenConns)
	getInt("POSTGRES_MAX_IDLE_CONNS", "8", &cfg.PGMaxIdleConns)

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	getInt("REDIS_PORT", "6379", &cfg.RedisPort)
	getInt("REDIS_DB", "0", &cfg.RedisDB)
	getInt("REDIS_POOL_SIZE", "10", &cfg.RedisPoolSize)
	getInt("REDIS_MIN_IDLE_CONNS", "2", &cfg.RedisMinIdleConns)
	getInt("REDIS_EXP_SECOND", "60", &cfg.RedisExpSecond)

	// Token config
	cfg.AccessTokenSecret = getEnv("ACCESS_TOKEN_SECRET", "access_secret_key")
	cfg.RefreshTokenSecret = getEnv("REFRESH_TOKEN_SECRET", "refresh_secret_key")
	getInt("ACCESS_TOKEN_EXP_SECOND", "900", &cfg.AccessTokenExpSecond)
	getInt("REFRESH_TOKEN_EXP_SECOND", "864000", &cfg.RefreshTokenExpSecond)

	// Media store config
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "http://localhost:9000")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "minioadmin")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "minioadmin")
	cfg.S3Bucket = getEnv("S3_BUCKET", "media")
	cfg.S3PublicBaseURL = getEnv("S3_PUBLIC_BASE_URL", cfg.S3Endpoint)
	getInt("MEDIA_UPLOAD_TIMEOUT_SECOND", "30", &cfg.MediaUploadTimeoutSecond)
	getInt("MEDIA_MAX_UPLOAD_MB", "10", &cfg.MediaMaxUploadMB)

	// Kafka config, publishing is disabled when no brokers are set
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "account-events")

	return cfg, err
}

// splitList splits a comma separated value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// run initializes the logger, database, Redis, media store, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	log := logger.Log
	defer log.Sync()
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Media store
	s3Client, err := facades.NewS3Client(ctx, cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}
	media := facades.NewMediaS3Facade(s3Client, cfg.S3Bucket, cfg.S3PublicBaseURL,
		time.Duration(cfg.MediaUploadTimeoutSecond)*time.Second)

	// Kafka writer for account events
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		defer w.Close()
		kafkaWriter = w
		log.Infof("Publishing account events to Kafka topic %s", cfg.KafkaTopic)
	} else {
		log.Info("KAFKA_BROKERS not set, account events are not published")
	}

	// Token services
	accessJWT := jwt.New(
		jwt.WithSecretKey(cfg.AccessTokenSecret),
		jwt.WithExpiration(time.Duration(cfg.AccessTokenExpSecond)*time.Second),
		jwt.WithCookieName(handlers.AccessTokenCookie),
	)
	refreshJWT := jwt.New(
		jwt.WithSecretKey(cfg.RefreshTokenSecret),
		jwt.WithExpiration(time.Duration(cfg.RefreshTokenExpSecond)*time.Second),
		jwt.WithCookieName(handlers.RefreshTokenCookie),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	userCacheRepo := repositories.NewUserCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)

	// Initialize services
	accountService := services.NewAccountService(userReadRepo, userWriteRepo, userCacheRepo, media, kafkaWriter)
	sessionService := services.NewSessionService(userReadRepo, userWriteRepo, accessJWT, refreshJWT)
	channelService := services.NewChannelService(userReadRepo, subscriptionRepo)

	maxUploadBytes := int64(cfg.MediaMaxUploadMB) << 20

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.MetricsMiddleware)
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", handlers.NewRegisterHandler(accountService, maxUploadBytes))
		r.Post("/login", handlers.NewLoginHandler(sessionService))
		r.Post("/refresh-token", handlers.NewRefreshTokenHandler(sessionService))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(accessJWT, accountService))

			r.Post("/logout", handlers.NewLogoutHandler(sessionService))
			r.Post("/getUser", handlers.NewGetCurrentUserHandler(accountService))
			r.Post("/updateAccount", handlers.NewUpdateAccountHandler(accountService))
			r.Post("/change-password", handlers.NewChangePasswordHandler(accountService))
			r.Patch("/avatar", handlers.NewUpdateAvatarHandler(accountService, maxUploadBytes))
			r.Patch("/cover-image", handlers.NewUpdateCoverImageHandler(accountService, maxUploadBytes))

			r.Get("/c/{username}", handlers.NewGetChannelProfileHandler(channelService))
			r.Post("/c/{username}/subscribe", handlers.NewSubscribeHandler(channelService))
			r.Delete("/c/{username}/subscribe", handlers.NewUnsubscribeHandler(channelService))
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
