package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/graph"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/pubsub"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"

	"library-backend/internal/domains/author"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	"library-backend/internal/domains/book"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/domains/user"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil with the memory driver
	Cache      cache.Cache          // Redis or Noop
	JWTManager *jwt.Manager
	Broker     *pubsub.Broker[*book.Book]

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo author.Repository
	BookRepo   book.Repository
	UserRepo   user.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	AuthorService author.Service
	BookService   book.Service
	UserService   user.Service

	// ========================================
	// TRANSPORT
	// ========================================
	Schema *graphql.Schema
}

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Infrastructure (DB, Cache, JWT, Broker) - phụ thuộc Config
// 2. Repositories - phụ thuộc Infrastructure
// 3. Services - phụ thuộc Repositories
// 4. GraphQL schema - phụ thuộc Services
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	if cfg.Store.Driver == config.StoreDriverPostgres {
		if err := c.initDatabase(ctx); err != nil {
			return nil, err
		}
	} else {
		log.Warn().Msg("Using in-memory store, data is lost on restart")
	}

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	c.initCache(ctx)

	// ========================================
	// STEP 3: TOKENS + BROKER
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.Broker = pubsub.NewBroker[*book.Book](pubsub.Config{
		BufferSize: cfg.Broker.BufferSize,
		SlowPolicy: pubsub.SlowPolicy(cfg.Broker.SlowPolicy),
	})

	// ========================================
	// STEP 4: REPOSITORIES + SERVICES
	// ========================================
	c.initRepositories()
	c.initServices()

	// ========================================
	// STEP 5: GRAPHQL SCHEMA
	// ========================================
	schema, err := graph.NewSchema(graph.NewResolver(c.BookService, c.AuthorService, c.UserService, c.Broker))
	if err != nil {
		c.Cleanup()
		return nil, err
	}
	c.Schema = schema

	log.Info().Str("store", cfg.Store.Driver).Msg("DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase(ctx context.Context) error {
	db := database.NewPostgresDB(c.Config.DBConfig())

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := db.RegisterPoolMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Warn().Err(err).Msg("pool metrics not registered")
	}

	c.DB = db
	return nil
}

// initCache - Redis failure không critical: login throttling and identity
// caching are disabled instead.
func (c *Container) initCache(ctx context.Context) {
	c.Cache = cache.Noop{}
	if !c.Config.Redis.Enabled {
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical), continuing without cache")
		_ = redisCache.Close()
		return
	}
	c.Cache = redisCache
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		pool := c.DB.Pool
		c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
		c.BookRepo = bookRepo.NewPostgresRepository(pool)
		c.UserRepo = userRepo.NewPostgresRepository(pool)
		return
	}

	c.AuthorRepo = authorRepo.NewMemoryRepository()
	c.BookRepo = bookRepo.NewMemoryRepository(c.AuthorRepo)
	c.UserRepo = userRepo.NewMemoryRepository()
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.Broker)
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache, c.JWTManager, userService.Options{
		BcryptCost:    c.Config.Login.BcryptCost,
		MaxAttempts:   c.Config.Login.MaxAttempts,
		LockoutWindow: c.Config.Login.Lockout,
	})
}

// ========================================
// HEALTH + CLEANUP
// ========================================

// Health pings the store and, when enabled, the cache.
func (c *Container) Health(ctx context.Context) error {
	var errs []error
	if c.DB != nil {
		if err := c.DB.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.Cache.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}
	return errors.Join(errs...)
}

// Cleanup dọn dẹp resources khi shutdown. The broker goes first so open
// subscriptions end before the store disappears.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.Broker != nil {
		_ = c.Broker.Close()
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
