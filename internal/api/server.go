package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/bingo-api/docs"
	v1 "github.com/vietanh2810/bingo-api/internal/api/handler/v1"
	"github.com/vietanh2810/bingo-api/internal/api/middleware"
	"github.com/vietanh2810/bingo-api/internal/config"
	"github.com/vietanh2810/bingo-api/internal/repository"
	"github.com/vietanh2810/bingo-api/internal/repository/dao"
	"github.com/vietanh2810/bingo-api/internal/repository/memory"
	"github.com/vietanh2810/bingo-api/internal/service"
	"github.com/vietanh2810/bingo-api/internal/ws"
)

// Repositories is the storage the server runs on.
type Repositories struct {
	Sessions service.SessionRepository
	Players  service.PlayerRepository
	Patterns service.PatternRepository
	Users    service.UserRepository
}

func NewPostgresRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Sessions: repository.NewSessionRepository(dao.NewSessionDAO(db)),
		Players:  repository.NewPlayerRepository(dao.NewPlayerDAO(db)),
		Patterns: repository.NewPatternRepository(dao.NewPatternDAO(db)),
		Users:    repository.NewUserRepository(dao.NewUserDAO(db)),
	}
}

func NewMemoryRepositories() Repositories {
	store := memory.NewStore()

	return Repositories{
		Sessions: store.Sessions,
		Players:  store.Players,
		Patterns: store.Patterns,
		Users:    store.Users,
	}
}

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Hub    *ws.Hub

	authSvc    *service.AuthService
	patternSvc *service.PatternService
	gameSvc    *service.GameService
}

// NewServer wires services and routes. cache may be nil.
func NewServer(conf *config.AppConfig, repos Repositories, cache service.SessionCache) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	hub := ws.NewHub()
	s := &Server{
		Config:     conf,
		Router:     engine,
		Hub:        hub,
		authSvc:    service.NewAuthService(repos.Users),
		patternSvc: service.NewPatternService(repos.Patterns),
		gameSvc: service.NewGameService(
			repos.Sessions,
			repos.Players,
			repos.Patterns,
			hub,
			service.NewDrawEngine(nil),
			cache,
		),
	}

	s.MountMiddlewares()
	s.MountHandlers()

	return s
}

// Seed stores the predefined patterns and the host account.
func (s *Server) Seed(ctx context.Context) error {
	if err := s.patternSvc.SeedPredefined(ctx); err != nil {
		return fmt.Errorf("s.patternSvc.SeedPredefined -> %w", err)
	}
	if err := s.authSvc.EnsureHost(ctx, s.Config.Host.Username, s.Config.Host.Password); err != nil {
		return fmt.Errorf("s.authSvc.EnsureHost -> %w", err)
	}

	return nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Metrics())
}

func (s *Server) MountHandlers() {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)
	authHandler := v1.NewAuthHandler(s.Config.API, s.authSvc)
	patternHandler := v1.NewPatternHandler(s.patternSvc)
	sessionHandler := v1.NewSessionHandler(s.gameSvc)
	gameHandler := v1.NewGameHandler(s.gameSvc)
	cardHandler := v1.NewCardHandler(s.gameSvc)
	socketHandler := v1.NewGameSocketHandler(s.gameSvc, s.Hub, authenticator, s.Config.API.AllowedCORSDomains)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/patterns", patternHandler.HandleListPatterns)

		public.GET("/sessions", sessionHandler.HandleListSessions)
		public.GET("/sessions/active", sessionHandler.HandleListActiveSessions)
		public.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		public.GET("/sessions/:sessionID/stats", sessionHandler.HandleSessionStats)

		public.GET("/game/:sessionID/players", gameHandler.HandleListPlayers)
		public.POST("/game/:sessionID/join", gameHandler.HandleJoin)
		public.POST("/game/:sessionID/claim", gameHandler.HandleClaim)

		public.GET("/cards", cardHandler.HandleGenerateCards)
		public.GET("/card/:playerID", cardHandler.HandleGetCard)
		public.PATCH("/card/:playerID", cardHandler.HandleUpdateMarks)
	}

	host := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		host.POST("/patterns", patternHandler.HandleCreatePattern)

		host.POST("/sessions", sessionHandler.HandleCreateSession)
		host.PATCH("/sessions/:sessionID", sessionHandler.HandleUpdateSession)
		host.DELETE("/sessions/:sessionID", sessionHandler.HandleDeleteSession)

		host.POST("/game/:sessionID/draw", gameHandler.HandleDraw)
		host.POST("/game/:sessionID/pause", gameHandler.HandlePause)
		host.POST("/game/:sessionID/resume", gameHandler.HandleResume)
		host.POST("/game/:sessionID/finish", gameHandler.HandleFinish)
		host.POST("/game/:sessionID/mesa-pide", gameHandler.HandleMesaPide)
	}

	s.Router.GET("/ws", socketHandler.HandleWebSocket)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Bingo API"
	docs.SwaggerInfo.Description = "Live bingo sessions: draws, cards, claims and realtime rooms."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
