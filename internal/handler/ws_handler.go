/*
Package handler provides the HTTP handler for WebSocket connection upgrading.

The connection gateway lives here: it rate-limits, upgrades, verifies the
bearer credential from the connection URI, registers the session, and starts
the pumps. A bad token closes the connection with no further processing and
nothing registered.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgtype"

	"inkroom/internal/app/live"
	"inkroom/internal/pkg/auth/jwt"
	"inkroom/internal/pkg/errs"
	"inkroom/internal/pkg/limiter"
	"inkroom/internal/pkg/logx"
	"inkroom/internal/pkg/resp"
)

// HandleWebSocket creates the HandlerFunc that accepts live connections.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		token := r.URL.Query().Get("token")

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		claims, err := jwt.ParseToken(token, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket connection rejected: invalid token, closing", "error", err)
			conn.Close()
			return
		}

		var userUUID pgtype.UUID
		if err := userUUID.Scan(claims.UserID); err != nil {
			logx.Warn("WebSocket connection rejected: malformed user id in token", "user_id", claims.UserID)
			conn.Close()
			return
		}

		session := live.NewSession(conn, claims.UserID, userUUID)

		deps.Registry.Register(session)

		go session.WritePump()

		logx.Info("WebSocket connection established", "user_id", claims.UserID)

		session.ReadPump(r.Context(), deps.Registry, deps.Engine)
	}
}
