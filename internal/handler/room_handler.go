/*
Package handler provides HTTP handler functions for room creation, lookup,
private-room join, and listings.
*/
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"inkroom/internal/app/store"
	"inkroom/internal/pkg/auth/jwt"
	"inkroom/internal/pkg/errs"
	"inkroom/internal/pkg/logx"
	"inkroom/internal/pkg/randx"
	"inkroom/internal/pkg/req"
	"inkroom/internal/pkg/resp"
)

type CreateRoomInput struct {
	// Name becomes the room's unique slug.
	Name string `json:"name"`
	// Type is PUBLIC or PRIVATE.
	Type string `json:"type"`
}

// HandleCreateRoom creates a room owned by the authenticated caller.
// PRIVATE rooms come back with their access code; PUBLIC rooms omit it.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)

		adminID, customErr := scanIdentity(claims)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input CreateRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, customErr := deps.Rooms.Create(r.Context(), adminID, input.Name, input.Type)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		payload := map[string]any{
			"roomId": room.ID,
			"slug":   room.Slug,
			"type":   room.Type,
		}
		if room.Code.Valid {
			payload["code"] = room.Code.String
		}

		resp.RespondSuccess(w, r, payload)
	}
}

// HandleGetRoom renders a room by slug, including the admin's display name.
func HandleGetRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		room, customErr := deps.Rooms.ResolveBySlug(r.Context(), slug)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		adminName := ""
		if admin, err := deps.Store.UserByID(r.Context(), room.AdminID); err == nil {
			adminName = admin.Name
		} else {
			logx.Warn("room admin lookup failed", "room_id", room.ID, "error", err)
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room": map[string]any{
				"id":        room.ID,
				"slug":      room.Slug,
				"type":      room.Type,
				"createdAt": room.CreatedAt.Time.Format(time.RFC3339),
				"admin":     map[string]any{"name": adminName},
			},
		})
	}
}

type JoinRoomInput struct {
	Code string `json:"code"`
}

// HandleJoinRoom resolves a private-room access code to the room it gates.
// This is the only place the code is checked; the live channel accepts any
// session that already holds the room id.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input JoinRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		code := strings.ToUpper(strings.TrimSpace(input.Code))
		if !randx.IsValidAccessCode(code) {
			resp.RespondError(w, r, errs.NewError(errs.ErrCodeNotFound))
			return
		}

		room, customErr := deps.Rooms.ResolveByCode(r.Context(), code)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room": map[string]any{
				"id":   room.ID,
				"slug": room.Slug,
				"type": room.Type,
			},
		})
	}
}

// HandleListRooms renders every room.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := deps.Store.ListRooms(r.Context())
		if err != nil {
			logx.Error(err, "room listing failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrStorage))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"rooms": roomListPayload(rooms)})
	}
}

// HandleMyRooms renders the rooms created by the authenticated caller.
func HandleMyRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)

		adminID, customErr := scanIdentity(claims)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		rooms, err := deps.Store.ListRoomsByAdmin(r.Context(), adminID)
		if err != nil {
			logx.Error(err, "my-rooms listing failed", "user_id", claims.UserID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorage))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"rooms": roomListPayload(rooms)})
	}
}

// HandlePublicRooms renders PUBLIC rooms, leaving out the caller's own when
// the request carries an identity.
func HandlePublicRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var exclude pgtype.UUID
		if claims := jwt.GetClaimsFromContext(r); claims != nil {
			if scanned, customErr := scanIdentity(claims); customErr == nil {
				exclude = scanned
			}
		}

		rooms, err := deps.Store.ListPublicRooms(r.Context(), exclude)
		if err != nil {
			logx.Error(err, "public-rooms listing failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrStorage))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"rooms": roomListPayload(rooms)})
	}
}

// roomListPayload converts listing rows to their response form.
func roomListPayload(rooms []store.RoomListItem) []map[string]any {
	payload := make([]map[string]any, 0, len(rooms))
	for _, room := range rooms {
		payload = append(payload, map[string]any{
			"id":        room.ID,
			"slug":      room.Slug,
			"type":      room.Type,
			"createdAt": room.CreatedAt.Time.Format(time.RFC3339),
			"admin":     map[string]any{"name": room.AdminName},
			"chatCount": room.ChatCount,
		})
	}
	return payload
}

// scanIdentity converts the JWT identity into the UUID form the store uses.
func scanIdentity(claims *jwt.Claims) (pgtype.UUID, *errs.CustomError) {
	var id pgtype.UUID

	if claims == nil {
		return id, errs.NewError(errs.ErrUnauthorized)
	}

	if err := id.Scan(claims.UserID); err != nil {
		logx.Warn("identity token carries a malformed user id", "user_id", claims.UserID)
		return id, errs.NewError(errs.ErrUnauthorized)
	}

	return id, nil
}
