package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ali-azimo/house-aj/internal/auth"
	"github.com/ali-azimo/house-aj/internal/config"
	"github.com/ali-azimo/house-aj/internal/http/handlers"
	"github.com/ali-azimo/house-aj/internal/middleware"
	"github.com/ali-azimo/house-aj/internal/storage"
)

// Stores bundles the persistence interfaces the routes need.
type Stores struct {
	Users  storage.UserStore
	Houses storage.HouseStore
	Likes  storage.LikeStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware and the route table and returns a ready server.
func New(cfg config.Config, stores Stores) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authHandler := handlers.NewAuthHandler(stores.Users, tokens, cfg.CookieSecure, cfg.JWTTTL)
	houseHandler := handlers.NewHouseHandler(stores.Houses)
	likeHandler := handlers.NewLikeHandler(stores.Likes)
	similarHandler := handlers.NewSimilarHandler(stores.Houses)
	userHandler := handlers.NewUserHandler(stores.Users)
	healthHandler := handlers.NewHealthHandler(time.Now())

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.Auth(tokens, h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.AdminOnly(tokens, h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.Handle)

	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/signin", authHandler.Signin)
	mux.HandleFunc("POST /auth/google", authHandler.Google)
	mux.HandleFunc("POST /auth/signout", authHandler.Signout)
	mux.Handle("POST /auth/create-user", adminOnly(authHandler.CreateUser))

	mux.Handle("POST /houses/create", authed(houseHandler.Create))
	mux.HandleFunc("GET /houses/get", houseHandler.List)
	mux.HandleFunc("GET /houses/search", houseHandler.Search)
	mux.HandleFunc("GET /houses/get/{id}", houseHandler.Get)
	mux.Handle("PUT /houses/update/{id}", authed(houseHandler.Update))
	mux.Handle("DELETE /houses/delete/{id}", authed(houseHandler.Delete))
	mux.Handle("GET /houses/user/{userId}", authed(houseHandler.ByOwner))

	mux.Handle("POST /likes/toggle", authed(likeHandler.Toggle))
	mux.HandleFunc("GET /likes/count/{houseId}", likeHandler.Count)
	mux.Handle("GET /likes/check/{houseId}", authed(likeHandler.Check))

	mux.HandleFunc("GET /similar/{type}/{id}", similarHandler.Get)

	mux.Handle("GET /user", adminOnly(userHandler.List))
	mux.Handle("GET /user/{id}", authed(userHandler.Get))
	mux.Handle("PUT /user/{id}", authed(userHandler.Update))
	mux.Handle("DELETE /user/{id}", authed(userHandler.Delete))

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
