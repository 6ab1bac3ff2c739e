/*
Package handler provides the HTTP routes of the coordination gateway.

This file contains the chat room routes: room resolution between two
participants, room lookup by identifier, the caller's room list, and the REST
message backlog backing the chat list preview.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pandacare/internal/app/identity"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/resp"
)

// requireToken returns the caller's bearer credential or writes the
// credential-missing error.
func requireToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := identity.TokenFromContext(r.Context())
	if !ok {
		resp.RespondError(w, r, errs.NewError(errs.ErrCredentialMissing))
		return "", false
	}
	return token, true
}

// HandleGetChatRoom resolves the room binding a patient and a caregiver.
func HandleGetChatRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		pacilianID := chi.URLParam(r, "pacilianID")
		caregiverID := chi.URLParam(r, "caregiverID")
		if pacilianID == "" || caregiverID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		room, err := deps.Backend.GetChatRoom(r.Context(), token, pacilianID, caregiverID)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, room)
	}
}

// HandleGetChatRoomByID fetches one room by its identifier.
func HandleGetChatRoomByID(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		room, err := deps.Backend.GetChatRoomByID(r.Context(), token, chi.URLParam(r, "roomID"))
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, room)
	}
}

// HandleListChatRooms lists the caller's rooms, scoped by the role decoded
// from the credential.
func HandleListChatRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		id, ok := identity.FromContext(r.Context())
		if !ok || id.IsSentinel() {
			resp.RespondError(w, r, errs.NewError(errs.ErrCredentialMalformed))
			return
		}

		var rooms any
		var err *errs.CustomError
		if id.Role == identity.RoleCaregiver {
			rooms, err = deps.Backend.GetCaregiverChatRooms(r.Context(), token, id.ID)
		} else {
			rooms, err = deps.Backend.GetPacilianChatRooms(r.Context(), token, id.ID)
		}
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, rooms)
	}
}

// HandleGetMessageHistory fetches the message backlog of one room.
func HandleGetMessageHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		messages, err := deps.Backend.GetMessageHistory(r.Context(), token, chi.URLParam(r, "roomID"))
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, messages)
	}
}
