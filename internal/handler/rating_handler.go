/*
Package handler provides the HTTP routes of the coordination gateway.

This file contains the rating routes: aggregate listings, per-caregiver
ratings, and rating CRUD. Aggregation math stays in the backend.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pandacare/internal/app/backend"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/req"
	"pandacare/internal/pkg/resp"
)

const (
	minRatingScore = 1
	maxRatingScore = 5
)

// HandleListRatedCaregivers lists caregivers with their aggregate ratings.
func HandleListRatedCaregivers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		caregivers, err := deps.Backend.ListRatedCaregivers(r.Context(), token)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, caregivers)
	}
}

// HandleGetCaregiverRatings lists the ratings for one caregiver.
func HandleGetCaregiverRatings(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		ratings, err := deps.Backend.GetCaregiverRatings(r.Context(), token, chi.URLParam(r, "caregiverID"))
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, ratings)
	}
}

// bindRating binds and validates a rating payload.
func bindRating(w http.ResponseWriter, r *http.Request) (backend.CreateRatingRequest, *errs.CustomError) {
	var request backend.CreateRatingRequest
	if bindErr := req.BindJSON(w, r, &request); bindErr != nil {
		return request, bindErr
	}
	if request.Score < minRatingScore || request.Score > maxRatingScore {
		return request, errs.NewError(errs.ErrInvalidParams)
	}
	return request, nil
}

// HandleCreateRating submits a new rating.
func HandleCreateRating(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		request, bindErr := bindRating(w, r)
		if bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}
		if request.CaregiverID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Backend.CreateRating(r.Context(), token, request); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleUpdateRating edits an existing rating.
func HandleUpdateRating(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		request, bindErr := bindRating(w, r)
		if bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if err := deps.Backend.UpdateRating(r.Context(), token, chi.URLParam(r, "ratingID"), request); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleDeleteRating removes a rating.
func HandleDeleteRating(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		if err := deps.Backend.DeleteRating(r.Context(), token, chi.URLParam(r, "ratingID")); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
