package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"careernav/internal/auth"
	"careernav/internal/config"
	"careernav/internal/domain/fiber/handler"
	"careernav/internal/middleware"
	"careernav/internal/repository"
	"careernav/internal/service"
	"careernav/internal/storage"
	"careernav/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	store := buildStore()

	candidates, geminis, err := service.BuildCandidates(ctx, config.LoadGeminiConfig(), config.LoadOpenRouterConfig())
	if err != nil {
		log.Fatal(err)
	}
	dispatcher, err := service.NewDispatcher(candidates)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("model dispatcher configured with %d candidates", len(candidates))

	var embedder service.Embedder
	if len(geminis) > 0 {
		embedder = geminis[0]
	}

	var files *storage.Client
	if minioConfig := config.LoadMinioConfig(); minioConfig.Enabled() {
		files, err = storage.NewClient(minioConfig)
		if err != nil {
			// Raw-file archiving is best effort; the analyzer works without it.
			log.Printf("object storage unavailable: %v", err)
			files = nil
		}
	}

	authConfig := config.LoadAuthConfig()
	tokens := auth.NewTokenService(authConfig.JWTSecret, authConfig.TokenTTL)

	analysisUC := usecase.NewAnalysisUsecase(store, dispatcher, embedder, files)
	interviewUC := usecase.NewInterviewUsecase(store, dispatcher)
	authUC := usecase.NewAuthUsecase(store, tokens)

	api := app.Group("/api", middleware.OptionalAuth(tokens))
	handler.NewResumeHandler(analysisUC).RegisterRoutes(api)
	handler.NewInterviewHandler(interviewUC).RegisterRoutes(api)
	handler.NewAuthHandler(authUC).RegisterRoutes(api)
	handler.NewCareerHandler(store).RegisterRoutes(api)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// buildStore selects the persistence backend: PostgreSQL when configured,
// otherwise the in-memory store (all data lost on restart).
func buildStore() repository.Store {
	dbConfig := config.LoadDBConfig()
	if !dbConfig.Enabled() {
		log.Println("DB_HOST not set, using in-memory store")
		return repository.NewMemoryStore()
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	appConfig := config.LoadAppConfig()
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	gormStore := repository.NewGormStore(db)
	if err := gormStore.Migrate(); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return gormStore
}
