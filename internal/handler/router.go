/*
Package handler provides the HTTP handlers and routing setup for the inkroom server.

This file defines the main Router, applying logging, CORS, and IP-based rate
limiting before delegating to the API and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"inkroom/internal/pkg/auth/jwt"
	"inkroom/internal/pkg/limiter"
	"inkroom/internal/pkg/logx"
	"inkroom/internal/pkg/resp"
)

const (
	CreateRate    = 0.05
	CreateBurst   = 2
	ConnectRate   = 0.2
	ConnectBurst  = 5
)

// Router sets up the routing table: CORS, request logging, identity
// extraction, the REST endpoints, and the live-channel upgrade.
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: origin not allowed", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(jwt.IdentityExtractor(deps.Config.JWTSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "inkroom",
		})
	})

	r.Post("/signup", HandleSignup(deps))
	r.Post("/signin", HandleSignin(deps))

	r.Get("/room/{slug}", HandleGetRoom(deps))
	r.Post("/join-room", HandleJoinRoom(deps))
	r.Get("/rooms", HandleListRooms(deps))
	r.Get("/public-rooms", HandlePublicRooms(deps))
	r.Get("/shapes/{roomId}", HandleGetShapes(deps))

	r.Group(func(protected chi.Router) {
		protected.Use(jwt.RequireIdentity)

		rateLimitedCreate := createLimiter.Middleware(HandleCreateRoom(deps))
		protected.Post("/room", rateLimitedCreate.ServeHTTP)
		protected.Get("/my-rooms", HandleMyRooms(deps))
		protected.Delete("/chats/{roomId}", HandleClearShapes(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
