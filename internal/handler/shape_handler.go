/*
Package handler provides HTTP handler functions for the shape replay feed
and the clear-all endpoint.
*/
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"inkroom/internal/app/db"
	"inkroom/internal/pkg/auth/jwt"
	"inkroom/internal/pkg/errs"
	"inkroom/internal/pkg/logx"
	"inkroom/internal/pkg/resp"
)

// maxReplayShapes caps how much history a joining client backfills.
const maxReplayShapes = 50

// HandleGetShapes serves the replay feed: the room's most recent entries,
// newest first. Clients call this before or alongside opening the live
// channel; an empty room yields an empty list.
func HandleGetShapes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID, customErr := parseRoomID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		entries, err := deps.Store.RecentShapes(r.Context(), roomID, maxReplayShapes)
		if err != nil {
			logx.Error(err, "replay feed query failed", "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorage))
			return
		}

		messages := make([]map[string]any, 0, len(entries))
		for _, entry := range entries {
			messages = append(messages, map[string]any{
				"id":        entry.ID,
				"roomId":    entry.RoomID,
				"userId":    uuidString(entry.UserID),
				"message":   entry.Message,
				"createdAt": entry.CreatedAt.Time.Format(time.RFC3339),
			})
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": messages})
	}
}

// HandleClearShapes deletes every persisted shape in the room. Only the room
// creator may clear; the caller is expected to follow up with a clear_all
// live event so joined sessions wipe their canvases.
func HandleClearShapes(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := jwt.GetClaimsFromContext(r)

		roomID, customErr := parseRoomID(r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, err := deps.Store.RoomByID(r.Context(), roomID)
		if err != nil {
			if db.IsNotFound(err) {
				resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
				return
			}
			logx.Error(err, "room lookup failed before clear", "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorage))
			return
		}

		if uuidString(room.AdminID) != claims.UserID {
			resp.RespondError(w, r, errs.NewError(errs.ErrForbidden))
			return
		}

		count, err := deps.Store.DeleteRoomShapes(r.Context(), roomID)
		if err != nil {
			logx.Error(err, "clear-all delete failed", "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorage))
			return
		}

		logx.Info("room canvas cleared", "room_id", roomID, "deleted", count, "user_id", claims.UserID)

		resp.RespondSuccess(w, r, map[string]any{"count": count})
	}
}

// parseRoomID reads the numeric roomId path parameter.
func parseRoomID(r *http.Request) (int64, *errs.CustomError) {
	raw := chi.URLParam(r, "roomId")

	roomID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || roomID <= 0 {
		return 0, errs.NewError(errs.ErrInvalidParams)
	}

	return roomID, nil
}
