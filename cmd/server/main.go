package main

import (
	"embed"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"socialtrackr/internal/config"
	"socialtrackr/internal/handler"
	applog "socialtrackr/internal/logger"
	"socialtrackr/internal/metrics"
	"socialtrackr/internal/middleware"
	"socialtrackr/internal/model"
	"socialtrackr/internal/repository"
	"socialtrackr/internal/service"
	"socialtrackr/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

//go:embed dist/*
var staticFS embed.FS

const resendBaseURL = "https://api.resend.com"

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	applog.Init(cfg.Log)
	middleware.SetSecret(cfg.Server.JWTSecret)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.Account{}, &model.StateBlob{}); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	accounts := repository.NewGormAccountRepo(db)
	states := repository.NewStateRepo(store.NewGormKV(db))

	reg := prometheus.NewRegistry()
	col := metrics.NewCollector(reg)

	authSvc := service.NewAuthService(accounts)
	stateSvc := service.NewStateService(states)
	obSvc := service.NewOnboardingService(states)
	plannerSvc := service.NewPlannerService(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	mailSvc := service.NewMailService(resendBaseURL, cfg.Email.APIKey, cfg.Email.From)

	authH := handler.NewAuthHandler(authSvc, stateSvc)
	obH := handler.NewOnboardingHandler(obSvc)
	calH := handler.NewCalendarHandler(plannerSvc, stateSvc, col)
	chatH := handler.NewChatHandler(plannerSvc, stateSvc, col)
	mileH := handler.NewMilestoneHandler(mailSvc, col)
	anH := handler.NewAnalyticsHandler(stateSvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"X-New-Token"},
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))

	r.POST("/api/register", authH.Register)
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", middleware.JWTAuth())
	api.POST("/logout", authH.Logout)
	api.GET("/me", authH.Me)
	api.GET("/onboarding", obH.View)
	api.POST("/onboarding/select", obH.Select)
	api.POST("/onboarding/next", obH.Next)
	api.POST("/onboarding/back", obH.Back)
	api.POST("/calendar/generate", calH.Generate)
	api.GET("/calendar", calH.Month)
	api.GET("/posts/:date", calH.GetPost)
	api.PUT("/posts/:date", calH.SaveEdit)
	api.POST("/posts/:date/toggle", calH.Toggle)
	api.POST("/chat", chatH.Chat)
	api.GET("/chat/chips", chatH.Chips)
	api.POST("/milestone", mileH.Send)
	api.GET("/analytics", anH.View)

	distFS, _ := fs.Sub(staticFS, "dist")
	r.NoRoute(gin.WrapH(http.FileServer(http.FS(distFS))))

	slog.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("server failed", "err", err)
	}
}
