/*
Package room implements the room lifecycle: creation with slug validation
and uniqueness, access-code assignment for private rooms, and lookups by
slug or code.

Rooms are immutable after creation except for their shape log, and are never
deleted.
*/
package room

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"inkroom/internal/app/db"
	"inkroom/internal/app/store"
	"inkroom/internal/pkg/errs"
	"inkroom/internal/pkg/logx"
	"inkroom/internal/pkg/randx"
)

const (
	// TypePublic marks a room anyone may look up by slug.
	TypePublic = "PUBLIC"

	// TypePrivate marks a room gated by an access code.
	TypePrivate = "PRIVATE"

	// maxCodeAttempts bounds random access-code generation before falling
	// back to a timestamp-derived code.
	maxCodeAttempts = 10
)

// Store is the persistence surface the lifecycle needs.
type Store interface {
	InsertRoom(ctx context.Context, arg store.InsertRoomParams) (store.Room, error)
	RoomBySlug(ctx context.Context, slug string) (store.Room, error)
	RoomByCode(ctx context.Context, code string) (store.Room, error)
}

// Service coordinates room creation and resolution.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService returns a Service over the given store.
func NewService(st Store) *Service {
	return &Service{
		store:  st,
		logger: logx.Logger().With().Str("component", "room").Logger(),
	}
}

// Create validates the name and type, assigns an access code when the room
// is PRIVATE, and inserts the room. A taken slug fails with a conflict and
// writes nothing.
func (s *Service) Create(ctx context.Context, adminID pgtype.UUID, name, roomType string) (store.Room, *errs.CustomError) {
	if !randx.IsValidSlug(name) {
		return store.Room{}, errs.NewError(errs.ErrRoomNameInvalid)
	}

	if roomType != TypePublic && roomType != TypePrivate {
		return store.Room{}, errs.NewError(errs.ErrRoomTypeInvalid)
	}

	var code pgtype.Text
	if roomType == TypePrivate {
		generated, customErr := s.generateCode(ctx)
		if customErr != nil {
			return store.Room{}, customErr
		}
		code = pgtype.Text{String: generated, Valid: true}
	}

	created, err := s.store.InsertRoom(ctx, store.InsertRoomParams{
		Slug:    name,
		Type:    roomType,
		Code:    code,
		AdminID: adminID,
	})

	if err != nil {
		if db.IsUniqueViolation(err) {
			s.logger.Warn().Str("slug", name).Msg("Room creation conflict, slug already taken.")
			return store.Room{}, errs.NewError(errs.ErrRoomSlugExists)
		}

		s.logger.Error().Err(err).Str("slug", name).Msg("Failed to insert room.")
		return store.Room{}, errs.NewError(errs.ErrStorage)
	}

	s.logger.Info().
		Int64("room_id", created.ID).
		Str("slug", created.Slug).
		Str("type", created.Type).
		Msg("Room created.")

	return created, nil
}

// generateCode draws random access codes until one is unused, giving up
// after maxCodeAttempts and falling back to a timestamp-derived code. The
// fallback is inserted without a uniqueness check.
func (s *Service) generateCode(ctx context.Context) (string, *errs.CustomError) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randx.AccessCode()
		if err != nil {
			return "", errs.NewError(errs.ErrUnknown, err)
		}

		_, err = s.store.RoomByCode(ctx, code)
		if db.IsNotFound(err) {
			return code, nil
		}
		if err != nil {
			s.logger.Error().Err(err).Msg("Access code uniqueness check failed.")
			return "", errs.NewError(errs.ErrStorage)
		}

		s.logger.Warn().Int("attempt", attempt+1).Msg("Access code collision, retrying.")
	}

	fallback := randx.TimestampCode()
	s.logger.Warn().Str("code", fallback).Msg("Access code attempts exhausted, using timestamp fallback.")

	return fallback, nil
}

// ResolveBySlug looks up a room by its slug.
func (s *Service) ResolveBySlug(ctx context.Context, slug string) (store.Room, *errs.CustomError) {
	room, err := s.store.RoomBySlug(ctx, slug)
	if db.IsNotFound(err) {
		return store.Room{}, errs.NewError(errs.ErrRoomNotFound)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("Room lookup by slug failed.")
		return store.Room{}, errs.NewError(errs.ErrStorage)
	}

	return room, nil
}

// ResolveByCode looks up a private room by its access code.
func (s *Service) ResolveByCode(ctx context.Context, code string) (store.Room, *errs.CustomError) {
	room, err := s.store.RoomByCode(ctx, code)
	if db.IsNotFound(err) {
		return store.Room{}, errs.NewError(errs.ErrCodeNotFound)
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Room lookup by code failed.")
		return store.Room{}, errs.NewError(errs.ErrStorage)
	}

	return room, nil
}
