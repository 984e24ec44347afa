package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/tmarkovic/crate/internal/config"
	"github.com/tmarkovic/crate/internal/database"
	postgresrepo "github.com/tmarkovic/crate/internal/repository/postgres"
	"github.com/tmarkovic/crate/internal/service"
	"github.com/tmarkovic/crate/internal/token"
	"github.com/tmarkovic/crate/internal/transport/http/handlers"
	"github.com/tmarkovic/crate/internal/transport/http/middleware"
	"github.com/tmarkovic/crate/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	playlistRepo := postgresrepo.NewPlaylistRepo(pool)
	songRepo := postgresrepo.NewSongRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)
	notificationRepo := postgresrepo.NewNotificationRepo(pool)

	// Token issuer
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// WebSocket hub for real-time notifications
	hub := ws.NewHub()
	go hub.Run()

	// Services
	notificationService := service.NewNotificationService(notificationRepo, ws.NewHubNotifier(hub))
	authService := service.NewAuthService(userRepo, issuer)
	googleService := service.NewGoogleService(userRepo, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
	playlistService := service.NewPlaylistService(playlistRepo, songRepo, userRepo, notificationService)
	songService := service.NewSongService(songRepo, playlistRepo)
	userService := service.NewUserService(userRepo, playlistRepo, followRepo, notificationService)
	feedService := service.NewFeedService(playlistRepo, followRepo)

	if !googleService.Configured() {
		log.Println("WARN: Google OAuth credentials not configured, Google login disabled")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, googleService, cfg.FrontendURL)
	playlistHandler := handlers.NewPlaylistHandler(playlistService)
	songHandler := handlers.NewSongHandler(songService)
	userHandler := handlers.NewUserHandler(userService)
	feedHandler := handlers.NewFeedHandler(feedService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Session boundary
	auth := middleware.Auth(issuer)
	optionalAuth := middleware.OptionalAuth(issuer)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.HandleFunc("GET /api/v1/auth/google", authHandler.GoogleLogin)
	mux.HandleFunc("GET /api/v1/auth/google/callback", authHandler.GoogleCallback)

	// Playlists
	mux.Handle("GET /api/v1/playlists", optionalAuth(http.HandlerFunc(playlistHandler.List)))
	mux.Handle("POST /api/v1/playlists", auth(http.HandlerFunc(playlistHandler.Create)))
	mux.Handle("GET /api/v1/playlists/saved", auth(http.HandlerFunc(playlistHandler.ListSaved)))
	mux.Handle("GET /api/v1/playlists/{id}", optionalAuth(http.HandlerFunc(playlistHandler.Get)))
	mux.Handle("PUT /api/v1/playlists/{id}", auth(http.HandlerFunc(playlistHandler.Update)))
	mux.Handle("DELETE /api/v1/playlists/{id}", auth(http.HandlerFunc(playlistHandler.Delete)))
	mux.Handle("POST /api/v1/playlists/{id}/like", auth(http.HandlerFunc(playlistHandler.Like)))
	mux.Handle("DELETE /api/v1/playlists/{id}/like", auth(http.HandlerFunc(playlistHandler.Unlike)))
	mux.Handle("POST /api/v1/playlists/{id}/save", auth(http.HandlerFunc(playlistHandler.Save)))
	mux.Handle("DELETE /api/v1/playlists/{id}/save", auth(http.HandlerFunc(playlistHandler.Unsave)))

	// Songs
	mux.Handle("GET /api/v1/playlists/{id}/songs", optionalAuth(http.HandlerFunc(songHandler.List)))
	mux.Handle("POST /api/v1/playlists/{id}/songs", auth(http.HandlerFunc(songHandler.Add)))
	mux.Handle("PUT /api/v1/playlists/{id}/songs/reorder", auth(http.HandlerFunc(songHandler.Reorder)))
	mux.Handle("PUT /api/v1/songs/{id}", auth(http.HandlerFunc(songHandler.Update)))
	mux.Handle("DELETE /api/v1/songs/{id}", auth(http.HandlerFunc(songHandler.Delete)))

	// Feed & discover
	mux.Handle("GET /api/v1/feed", optionalAuth(http.HandlerFunc(feedHandler.Feed)))
	mux.HandleFunc("GET /api/v1/discover/trending", feedHandler.Trending)
	mux.HandleFunc("GET /api/v1/discover/tags/{tag}", feedHandler.ByTag)
	mux.Handle("GET /api/v1/discover/users", auth(http.HandlerFunc(feedHandler.SuggestedUsers)))

	// Users
	mux.HandleFunc("GET /api/v1/users", userHandler.List)
	mux.HandleFunc("GET /api/v1/users/id/{id}", userHandler.GetByID)
	mux.HandleFunc("GET /api/v1/users/{username}", userHandler.GetByUsername)
	mux.Handle("PUT /api/v1/users/{id}", auth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /api/v1/users/{id}", auth(http.HandlerFunc(userHandler.Delete)))
	mux.Handle("GET /api/v1/users/{id}/playlists", optionalAuth(http.HandlerFunc(userHandler.Playlists)))
	mux.Handle("POST /api/v1/users/{id}/follow", auth(http.HandlerFunc(userHandler.Follow)))
	mux.Handle("DELETE /api/v1/users/{id}/follow", auth(http.HandlerFunc(userHandler.Unfollow)))
	mux.HandleFunc("GET /api/v1/users/{id}/followers", userHandler.Followers)
	mux.HandleFunc("GET /api/v1/users/{id}/following", userHandler.Following)

	// Notifications
	mux.Handle("GET /api/v1/notifications", auth(http.HandlerFunc(notificationHandler.List)))
	mux.Handle("GET /api/v1/notifications/unread-count", auth(http.HandlerFunc(notificationHandler.UnreadCount)))
	mux.Handle("POST /api/v1/notifications/mark-all-read", auth(http.HandlerFunc(notificationHandler.MarkAllRead)))
	mux.Handle("POST /api/v1/notifications/{id}/read", auth(http.HandlerFunc(notificationHandler.MarkRead)))
	mux.Handle("DELETE /api/v1/notifications/{id}", auth(http.HandlerFunc(notificationHandler.Delete)))

	// WebSocket
	mux.HandleFunc("GET /api/v1/ws", ws.ServeWS(hub, issuer))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.FrontendURL)(mux)))
}
