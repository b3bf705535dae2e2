package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"qualiboard/internal/advisor"
	"qualiboard/internal/blob"
	"qualiboard/internal/board"
	"qualiboard/internal/config"
	"qualiboard/internal/database"
	"qualiboard/internal/handler"
	"qualiboard/internal/middleware"
	"qualiboard/internal/repository"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *logrus.Logger
}

func Init(cfg *config.Config) (*Server, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info("✅ Connected to database")

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("❌ failed to obtain sql.DB: %w", err)
	}
	if err := database.Migrate(sqlDB); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Info("✅ Schema migrations applied")

	// Redis is optional; without it notifications fall back to logging
	// and snapshots are skipped.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		log.WithField("addr", cfg.RedisAddr).Info("✅ Redis configured")
	}

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	assigneeRepo := repository.NewAssigneeRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Board service with its gateway, state store and side channels
	gateway := board.NewStoreGateway(
		boardRepo, columnRepo, taskRepo, labelRepo,
		assigneeRepo, checklistRepo, attachmentRepo, commentRepo,
	)
	blobStore, err := blob.NewDiskStore(cfg.AttachmentDir, cfg.AttachmentBaseURL)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to init blob store: %w", err)
	}
	notifier := board.NewRedisNotifier(redisClient, cfg.NotifyChannel, log)
	snapshots := board.NewSnapshotCache(redisClient, cfg.SnapshotTTL)
	boardService := board.NewService(gateway, blobStore, board.NewStore(), snapshots, notifier, log)

	// AI advisor is optional; without an API key analysis returns 503.
	var adv *advisor.Advisor
	if cfg.GenAIAPIKey != "" {
		adv, err = advisor.New(context.Background(), cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			return nil, fmt.Errorf("❌ failed to init advisor: %w", err)
		}
		log.Info("✅ Board analysis advisor enabled")
	}

	// Initialize handlers
	jwtExpiry := time.Duration(cfg.JWTExpiryHours) * time.Hour
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, jwtExpiry)
	boardHandler := handler.NewBoardHandler(boardService, adv)
	taskHandler := handler.NewTaskHandler(boardService, userRepo)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.Static("/attachments", cfg.AttachmentDir)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Board routes
		authorized.GET("/boards/:type", boardHandler.Get)
		authorized.POST("/boards/:type/reload", boardHandler.Reload)
		authorized.GET("/boards/:type/analysis", boardHandler.Analyze)

		// Task routes
		authorized.POST("/boards/:type/tasks", taskHandler.Create)
		authorized.PUT("/boards/:type/tasks/:id", taskHandler.Update)
		authorized.POST("/boards/:type/tasks/:id/move", taskHandler.Move)
		authorized.POST("/boards/:type/tasks/:id/labels/toggle", taskHandler.ToggleLabel)
		authorized.POST("/boards/:type/tasks/:id/assignees/toggle", taskHandler.ToggleAssignee)
		authorized.POST("/boards/:type/tasks/:id/checklist", taskHandler.AddChecklistItem)
		authorized.POST("/boards/:type/tasks/:id/checklist/:item_id/toggle", taskHandler.ToggleChecklistItem)
		authorized.POST("/boards/:type/tasks/:id/comments", taskHandler.AddComment)
		authorized.POST("/boards/:type/tasks/:id/attachments", taskHandler.UploadAttachment)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	s.Log.Info("✅ Server exited properly")
}
