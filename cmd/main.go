package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	api_middleware "github.com/cocobridge/penguinhop/api/middleware"
	v1 "github.com/cocobridge/penguinhop/api/v1"
	"github.com/cocobridge/penguinhop/internal/access"
	"github.com/cocobridge/penguinhop/internal/logger"
	"github.com/cocobridge/penguinhop/internal/score"
	"github.com/cocobridge/penguinhop/internal/session"
	"github.com/cocobridge/penguinhop/pkg/db"
	"github.com/cocobridge/penguinhop/websocket"
)

func main() {
	err := godotenv.Load()
	logger.Init(os.Getenv("DEBUG") == "true")
	defer logger.Sync()
	if err != nil {
		logger.Warn("file .env not found, using system values")
	}

	db.Init()
	db.DB.AutoMigrate(&score.ScoreRecord{}, &session.GameSession{})

	scoreRepo := score.NewScoreRepository(db.DB)
	sessionRepo := session.NewSessionRepository(db.DB, db.Rdb)
	sessionService := session.NewSessionService(sessionRepo)

	hub := websocket.NewHub(scoreRepo, score.DefaultLeaderboardLimit)
	defer hub.Shutdown()

	scoreService := score.NewScoreService(scoreRepo, sessionService, hub)

	verifier, err := access.DialVerifier(
		context.Background(),
		os.Getenv("ETH_RPC_URL"),
		os.Getenv("NFT_CONTRACT_ADDRESS"),
	)
	if err != nil {
		logger.Fatal("error connecting to chain RPC", zap.Error(err))
	}
	accessService := access.NewAccessService(verifier, sessionService, getEnv("GAME_ID", "penguin-hop"))

	v1.AccessService = accessService
	v1.ScoreService = scoreService
	v1.SessionService = sessionService

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")
	v1.RegisterAccessRoutes(api)
	v1.RegisterLeaderboardRoutes(api)

	scores := api.Group("")
	scores.Use(api_middleware.VendorAuth())
	v1.RegisterScoreRoutes(scores)

	sessions := api.Group("/session")
	sessions.Use(api_middleware.SetupJWTMiddleware())
	v1.RegisterSessionRoutes(sessions)

	e.GET("/ws", websocket.Handler(hub))

	e.Logger.Fatal(e.Start(":" + getEnv("PORT", "8080")))
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
