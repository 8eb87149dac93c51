package api

import (
	"fmt"
	"net/http"

	"matchday/internal/cache"
	"matchday/internal/config"
	"matchday/internal/database"
	"matchday/internal/handlers"
	"matchday/internal/logger"
	"matchday/internal/messaging"
	"matchday/internal/middleware"
	"matchday/internal/repository"
	"matchday/internal/search"
	"matchday/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
	repos    *repository.Repositories
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)

	// Подключаемся к базе данных
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Запускаем миграции
	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Подключаемся к NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	// Кеш и поиск опциональны: без них API остается полностью рабочим
	var valkeyClient *cache.ValkeyClient
	if cfg.Valkey.Addr != "" {
		valkeyClient, err = cache.NewValkeyClient(cfg.Valkey)
		if err != nil {
			logger.Get().Warn("Valkey unavailable, caching disabled", "error", err)
			valkeyClient = nil
		}
	}

	var searchClient *search.ElasticsearchClient
	if cfg.Elasticsearch.URL != "" {
		searchClient, err = search.NewElasticsearchClient(cfg.Elasticsearch)
		if err != nil {
			logger.Get().Warn("Elasticsearch unavailable, search falls back to database", "error", err)
			searchClient = nil
		}
	}

	// Создаем репозитории и сервисы
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, searchClient)

	// Создаем роутер
	router := gin.New()

	// Применяем middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	// Core reservation endpoint
	s.router.POST("/orders", h.CreateOrder)
	s.router.GET("/orders", h.ListOrders)

	// Read endpoints. The /orders/... aliases mirror the historical API
	// surface the demo UI still probes before falling back to the flat paths.
	s.router.GET("/events", h.ListEvents)
	s.router.GET("/orders/events", h.ListEvents)

	s.router.GET("/seats", h.ListSeats)
	s.router.GET("/orders/seats", h.ListSeats)

	s.router.GET("/users", h.ListUsers)
	s.router.POST("/users", h.CreateUser)
	s.router.GET("/orders/users", h.ListUsers)
	s.router.POST("/orders/users", h.CreateUser)

	// Service endpoints
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "Matchday Ticketing API"})
	})
	s.router.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	// Статическая демо-страница
	if s.config.StaticDir != "" {
		s.router.Static("/ui", s.config.StaticDir)
	}
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	health := s.db.HealthCheck(c.Request.Context())

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"ok":      health.Status == "healthy",
		"service": "matchday-api",
		"db":      health,
		"nats":    s.nats.Enabled(),
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
