package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"flexspaces/internal/config"
	"flexspaces/internal/database"
	"flexspaces/internal/mailer"
	"flexspaces/internal/middleware"
	"flexspaces/internal/modules/admin"
	"flexspaces/internal/modules/auth"
	"flexspaces/internal/modules/calendar"
	"flexspaces/internal/modules/rooms"
	"flexspaces/internal/modules/schedule"
	jwtsvc "flexspaces/internal/pkg/jwt"
	"flexspaces/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(repository.MigrationModels()...); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	var mail interface {
		Send(ctx context.Context, to, subject, htmlBody string) error
	}
	if cfg.SMTPAddr != "" {
		mail = mailer.NewSMTP(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		mail = mailer.LogMailer{}
	}

	authService := auth.NewService(userRepo, j, mail, cfg.BaseURL, cfg.ResetTTL)
	authHandler := auth.NewHandler(authService)

	adminService := admin.NewService(userRepo, j, mail, cfg.BaseURL, cfg.InviteTTL)
	adminHandler := admin.NewHandler(adminService)

	roomsService := rooms.NewService(roomRepo, slotRepo, calendarRepo)
	roomsHandler := rooms.NewHandler(roomsService)

	scheduleService := schedule.NewService(slotRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	calendarService := calendar.NewService(calendarRepo, roomRepo, slotRepo)
	calendarHandler := calendar.NewHandler(calendarService)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		roomsHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)
		calendarHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			calendarHandler.RegisterProtectedRoutes(protected)
		}

		adminGroup := v1.Group("/")
		adminGroup.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterAdminRoutes(adminGroup)
			roomsHandler.RegisterAdminRoutes(adminGroup)
			scheduleHandler.RegisterAdminRoutes(adminGroup)
			calendarHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	log.Printf("listening on %s (env=%s)", cfg.ListenAddr, cfg.AppEnv)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
