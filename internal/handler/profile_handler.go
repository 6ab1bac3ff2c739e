/*
Package handler provides the HTTP routes of the coordination gateway.

This file contains the account routes: profile read/update/delete, the
consultation history, and the role-based home path used by pages for
post-action navigation.
*/
package handler

import (
	"net/http"

	"pandacare/internal/app/backend"
	"pandacare/internal/app/identity"
	"pandacare/internal/app/routing"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/req"
	"pandacare/internal/pkg/resp"
)

// requireIdentity returns the caller's decoded identity or writes an error
// when the request is anonymous or carries an undecodable credential.
func requireIdentity(w http.ResponseWriter, r *http.Request) (identity.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok || id.IsSentinel() {
		resp.RespondError(w, r, errs.NewError(errs.ErrCredentialMissing))
		return identity.Identity{}, false
	}
	return id, true
}

// HandleHomePath returns the dashboard path for the caller's role.
func HandleHomePath(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrCredentialMissing))
			return
		}

		resp.RespondSuccess(w, r, map[string]string{
			"home": routing.HomePath(id),
			"role": string(id.Role),
		})
	}
}

// HandleGetProfile fetches the caller's profile.
func HandleGetProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		profile, err := deps.Backend.GetProfile(r.Context(), token, id.ID)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, profile)
	}
}

// HandleUpdateProfile replaces the caller's profile.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var profile backend.Profile
		if bindErr := req.BindJSON(w, r, &profile); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if err := deps.Backend.UpdateProfile(r.Context(), token, id.ID, profile); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleDeleteProfile removes the caller's account.
func HandleDeleteProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := deps.Backend.DeleteProfile(r.Context(), token, id.ID); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleConsultationHistory fetches the caller's past consultations.
func HandleConsultationHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		consultations, err := deps.Backend.GetConsultationHistory(r.Context(), token)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, consultations)
	}
}
