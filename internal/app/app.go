package app

import (
	"fmt"

	"github.com/galaxyhq/galaxy/internal/config"
	"github.com/galaxyhq/galaxy/internal/db"
	"github.com/galaxyhq/galaxy/internal/imagehost"
	"github.com/galaxyhq/galaxy/internal/moderation"
	"github.com/galaxyhq/galaxy/internal/repository"
	"github.com/galaxyhq/galaxy/internal/service"
	"github.com/galaxyhq/galaxy/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                      *config.Config
	DB                       *sqlx.DB
	AuthService              *service.AuthService
	UserService              *service.UserService
	PhotoService             *service.PhotoService
	SocialService            *service.SocialService
	CommentService           *service.CommentService
	ReportService            *service.ReportService
	EmailService             *service.EmailService
	RateLimitService         *service.RateLimitService
	ModerationWebhookService *service.ModerationWebhookService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	categoryRepository := repository.NewCategoryRepository(database)
	photoRepository := repository.NewPhotoRepository(database)
	likeRepository := repository.NewLikeRepository(database)
	bookmarkRepository := repository.NewBookmarkRepository(database)
	followRepository := repository.NewFollowRepository(database)
	commentRepository := repository.NewCommentRepository(database)
	reportRepository := repository.NewReportRepository(database)
	rateLimitRepository := repository.NewRateLimitRepository(database)

	// Storage
	avatarStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Image host
	host := imagehost.NewClient(imagehost.Config{
		CloudName:  cfg.ImageHostCloudName,
		APIKey:     cfg.ImageHostAPIKey,
		APISecret:  cfg.ImageHostAPISecret,
		Folder:     cfg.ImageHostFolder,
		APIBaseURL: cfg.ImageHostAPIBaseURL,
	})

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.SupportEmail,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	rateLimitService := service.NewRateLimitService(rateLimitRepository)
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry, cfg.IsProduction())
	userService := service.NewUserService(userRepository, avatarStorage, rateLimitService)
	photoService := service.NewPhotoService(photoRepository, categoryRepository, userRepository, host, rateLimitService)
	socialService := service.NewSocialService(likeRepository, bookmarkRepository, followRepository, userRepository, photoService, rateLimitService)
	filter := moderation.NewFilter(cfg.ModerationBlocklist)
	commentService := service.NewCommentService(commentRepository, photoService, filter, rateLimitService)
	reportService := service.NewReportService(reportRepository, photoRepository, photoService, emailService, rateLimitService)
	moderationWebhookService := service.NewModerationWebhookService(cfg.ModerationWebhookSecret, commentService, reportRepository)

	return &App{
		Cfg:                      cfg,
		DB:                       database,
		AuthService:              authService,
		UserService:              userService,
		PhotoService:             photoService,
		SocialService:            socialService,
		CommentService:           commentService,
		ReportService:            reportService,
		EmailService:             emailService,
		RateLimitService:         rateLimitService,
		ModerationWebhookService: moderationWebhookService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
