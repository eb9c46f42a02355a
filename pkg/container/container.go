package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"news-portal-backend/internal/config"
	infraCache "news-portal-backend/internal/infrastructure/cache"
	"news-portal-backend/internal/infrastructure/database"
	"news-portal-backend/internal/infrastructure/storage"
	"news-portal-backend/pkg/cache"
	"news-portal-backend/pkg/jwt"

	adHandler "news-portal-backend/internal/domains/ad/handler"
	adRepo "news-portal-backend/internal/domains/ad/repository"
	adService "news-portal-backend/internal/domains/ad/service"
	articleHandler "news-portal-backend/internal/domains/article/handler"
	articleRepo "news-portal-backend/internal/domains/article/repository"
	articleService "news-portal-backend/internal/domains/article/service"
	chatHandler "news-portal-backend/internal/domains/chat/handler"
	chatRepo "news-portal-backend/internal/domains/chat/repository"
	chatService "news-portal-backend/internal/domains/chat/service"
	commentHandler "news-portal-backend/internal/domains/comment/handler"
	commentRepo "news-portal-backend/internal/domains/comment/repository"
	commentService "news-portal-backend/internal/domains/comment/service"
	"news-portal-backend/internal/domains/task/djm"
	taskHandler "news-portal-backend/internal/domains/task/handler"
	"news-portal-backend/internal/domains/user"
	userHandler "news-portal-backend/internal/domains/user/handler"
	userRepo "news-portal-backend/internal/domains/user/repository"
	userService "news-portal-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the full dependency graph of the application.
// Everything in here is a singleton built once at startup.
type Container struct {
	// Infrastructure - shared across all domains
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	PubSub     cache.PubSub
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// Repositories - data access
	ArticleRepo articleRepo.ArticleRepository
	UserRepo    user.Repository
	CommentRepo commentRepo.CommentRepository
	AdRepo      adRepo.AdRepository
	ChatRepo    chatRepo.ChatRepository

	// Services - business logic
	ArticleService articleService.ServiceInterface
	UserService    user.Service
	CommentService commentService.ServiceInterface
	AdService      adService.ServiceInterface
	ChatService    chatService.ServiceInterface
	DJMClient      *djm.Client

	// Handlers - HTTP layer
	ArticleHandler *articleHandler.Handler
	UserHandler    *userHandler.UserHandler
	CommentHandler *commentHandler.Handler
	AdHandler      *adHandler.Handler
	ChatHandler    *chatHandler.Handler
	TaskHandler    *taskHandler.Handler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("Database connected")

	if cfg.Database.Migrate {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("Migrations applied")
	}

	// Step 3: cache + pub/sub
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		// Cache misses degrade gracefully; the chat feed does not.
		log.Printf("WARNING: Redis connection failed: %v", err)
	} else {
		log.Println("Redis connected")
	}
	c.Cache = redisCache
	c.PubSub = redisCache

	// Step 4: object storage
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	log.Println("Object storage ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	// Step 5: repositories
	c.initRepositories()

	// Step 6: services
	c.initServices()

	// Step 7: handlers
	c.initHandlers()

	log.Println("Container initialized")
	return c, nil
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ArticleRepo = articleRepo.NewPostgresArticleRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresCommentRepository(pool)
	c.AdRepo = adRepo.NewPostgresAdRepository(pool)
	c.ChatRepo = chatRepo.NewPostgresChatRepository(pool)
}

func (c *Container) initServices() {
	c.ArticleService = articleService.NewArticleService(c.ArticleRepo, c.Storage)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Storage)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.ArticleRepo)
	c.AdService = adService.NewAdService(c.AdRepo, c.Storage)
	c.ChatService = chatService.NewChatService(c.ChatRepo, c.PubSub)
	c.DJMClient = djm.NewClient(c.Config.Webhook.DJMUploadURL)
}

func (c *Container) initHandlers() {
	c.ArticleHandler = articleHandler.NewHandler(c.ArticleService, c.Cache)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CommentHandler = commentHandler.NewHandler(c.CommentService)
	c.AdHandler = adHandler.NewHandler(c.AdService)
	c.ChatHandler = chatHandler.NewHandler(c.ChatService)
	c.TaskHandler = taskHandler.NewHandler(c.DJMClient)
}

// Cleanup releases long-lived resources during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Println("Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("WARNING: failed to close Redis client: %v", err)
		}
	}
}
