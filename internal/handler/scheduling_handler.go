/*
Package handler provides the HTTP routes of the coordination gateway.

This file contains the scheduling routes for both roles: availability window
CRUD and consultation accept/reject for caregivers, consultation listing and
caregiver search for patients. Conflict resolution stays in the backend.
*/
package handler

import (
	"net/http"

	"pandacare/internal/app/backend"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/req"
	"pandacare/internal/pkg/resp"
)

// HandleGetSchedules lists the caregiver's availability windows.
func HandleGetSchedules(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		schedules, err := deps.Backend.GetCaregiverSchedules(r.Context(), token)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, schedules)
	}
}

// HandleCreateSchedule adds an availability window.
func HandleCreateSchedule(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		var schedule backend.Schedule
		if bindErr := req.BindJSON(w, r, &schedule); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}
		if schedule.StartTime == "" || schedule.EndTime == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if err := deps.Backend.CreateSchedule(r.Context(), token, schedule); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleModifySchedule moves an availability window.
func HandleModifySchedule(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		var change backend.ModifyScheduleRequest
		if bindErr := req.BindJSON(w, r, &change); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if err := deps.Backend.ModifySchedule(r.Context(), token, change); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleDeleteSchedule removes an availability window.
func HandleDeleteSchedule(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		var schedule backend.Schedule
		if bindErr := req.BindJSON(w, r, &schedule); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		if err := deps.Backend.DeleteSchedule(r.Context(), token, schedule); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleCaregiverConsultations lists consultation requests for the caregiver.
func HandleCaregiverConsultations(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		consultations, err := deps.Backend.GetCaregiverConsultations(r.Context(), token)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, consultations)
	}
}

// HandleConsultationDecision accepts or rejects a pending consultation.
func HandleConsultationDecision(deps *AppDeps, accept bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		var decision backend.ConsultationDecision
		if bindErr := req.BindJSON(w, r, &decision); bindErr != nil {
			resp.RespondError(w, r, bindErr)
			return
		}

		var err *errs.CustomError
		if accept {
			err = deps.Backend.AcceptConsultation(r.Context(), token, decision)
		} else {
			err = deps.Backend.RejectConsultation(r.Context(), token, decision)
		}
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandlePacilianConsultations lists the patient's consultations.
func HandlePacilianConsultations(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		consultations, err := deps.Backend.GetPacilianConsultations(r.Context(), token)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, consultations)
	}
}

// HandleFindCaregivers searches caregivers free in the requested window.
func HandleFindCaregivers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requireToken(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		startTime := query.Get("startTime")
		endTime := query.Get("endTime")
		if startTime == "" || endTime == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		caregivers, err := deps.Backend.FindAvailableCaregivers(r.Context(), token, startTime, endTime, query.Get("specialty"))
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, caregivers)
	}
}
