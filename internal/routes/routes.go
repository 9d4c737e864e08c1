package routes

import (
	"net/http"

	"github.com/galaxyhq/galaxy/internal/app"
	"github.com/galaxyhq/galaxy/internal/handler"
	"github.com/galaxyhq/galaxy/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	account := handler.NewAccountHandler(app.UserService)
	photo := handler.NewPhotoHandler(app.PhotoService)
	social := handler.NewSocialHandler(app.SocialService)
	comment := handler.NewCommentHandler(app.CommentService)
	report := handler.NewReportHandler(app.ReportService)
	webhook := handler.NewWebhookHandler(app.ModerationWebhookService)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Auth (rate limited per IP against credential stuffing)
	rateLimiter := middleware.RateLimitAuth(app.RateLimitService)

	mux.HandleFunc("POST /auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))

	// Browse (anonymous allowed; explore throttling lives in the service)
	mux.HandleFunc("GET /api/explore", photo.Explore)
	mux.HandleFunc("GET /api/feed", middleware.RequireAuth(photo.Feed))
	mux.HandleFunc("GET /api/categories", photo.Categories)
	mux.HandleFunc("GET /api/photos/{id}", photo.Show)
	mux.HandleFunc("GET /api/photos/{id}/comments", comment.List)
	mux.HandleFunc("GET /api/users/{username}", account.Profile)
	mux.HandleFunc("GET /api/users/{username}/photos", photo.UserPhotos)

	// Social mutations (per-user buckets enforced in the services)
	mux.HandleFunc("POST /api/photos/{id}/like", middleware.RequireAuth(social.ToggleLike))
	mux.HandleFunc("POST /api/photos/{id}/bookmark", middleware.RequireAuth(social.ToggleBookmark))
	mux.HandleFunc("POST /api/users/{id}/follow", middleware.RequireAuth(social.ToggleFollow))
	mux.HandleFunc("POST /api/photos/{id}/comments", middleware.RequireAuth(comment.Add))
	mux.HandleFunc("POST /api/photos/{id}/report", middleware.RequireAuth(report.Report))

	// Upload flow
	mux.HandleFunc("POST /api/uploads/sign", middleware.RequireAuth(photo.SignUpload))
	mux.HandleFunc("POST /api/photos", middleware.RequireAuth(photo.CreatePost))
	mux.HandleFunc("POST /api/account/avatar", middleware.RequireAuth(account.UploadAvatar))

	// Webhooks (signature verified, bypasses CSRF)
	mux.HandleFunc("POST /webhooks/moderation", webhook.Moderation)

	// Global middleware
	return middleware.Chain(mux,
		middleware.RequestLogging,
		middleware.ClientIP,
		middleware.CSRFProtection(app.Cfg.IsProduction()),
		middleware.AuthMiddleware(app.AuthService, app.UserService),
	)
}
