package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roomshare/roomshare/internal/config"
	"github.com/roomshare/roomshare/internal/handler"
	"github.com/roomshare/roomshare/internal/middleware"
	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/internal/service"
	"github.com/roomshare/roomshare/pkg/storage"
)

type Server struct {
	engine *gin.Engine
}

func New(cfg *config.Config, db *gorm.DB, blobs storage.BlobStore) *Server {
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	fileRepo := repository.NewFileRepository(db)

	cleanupSvc := service.NewCleanupService(roomRepo, fileRepo, blobs)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	profileSvc := service.NewProfileService(userRepo)
	roomSvc := service.NewRoomService(roomRepo, membershipRepo, userRepo, cleanupSvc)
	fileSvc := service.NewFileService(fileRepo, membershipRepo, userRepo, blobs)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	fileHandler := handler.NewFileHandler(fileSvc, cfg.MaxUploadBytes)
	adminHandler := handler.NewAdminHandler(cleanupSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	setupCORS(router, cfg.AllowedOrigins)
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Administrative sweep trigger; unauthenticated as shipped.
	router.POST("/admin/cleanup", adminHandler.Cleanup)

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		protected.POST("/rooms", roomHandler.CreateRoom)
		protected.POST("/rooms/join", roomHandler.JoinRoom)
		protected.GET("/rooms", roomHandler.ListRooms)
		protected.GET("/rooms/:id", roomHandler.GetRoomInfo)
		protected.POST("/rooms/:id/leave", roomHandler.LeaveRoom)
		protected.DELETE("/rooms/:id", roomHandler.DeleteRoom)

		protected.GET("/rooms/:id/files", fileHandler.ListFiles)
		protected.POST("/rooms/:id/files", fileHandler.UploadFile)
		protected.DELETE("/files/:id", fileHandler.DeleteFile)
		protected.GET("/files/:id/download", fileHandler.DownloadFile)
	}

	return &Server{engine: router}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
