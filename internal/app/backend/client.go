/*
Package backend is the REST client for the external care backend.

This file implements the client itself: bearer-authenticated JSON calls with a
request ID on every call and a uniform mapping from upstream failures to the
application's error codes.
*/
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pandacare/internal/app/chat"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/logx"
)

const requestTimeout = 30 * time.Second

// Client calls the external care backend. Every privileged call carries the
// caller's bearer credential; the client holds no credential of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient returns a Client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logx.Logger().With().Str("component", "backend_client").Logger(),
	}
}

// do performs one JSON request against the backend. A nil body sends no
// payload; a nil out discards the response body. Upstream failures map onto
// the application error codes so handlers respond uniformly.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) *errs.CustomError {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errs.NewError(errs.ErrUnknown)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return errs.NewError(errs.ErrUnknown)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Backend request failed")
		return errs.NewError(errs.ErrBackendUnavailable)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		c.logger.Warn().Int("status", res.StatusCode).Str("path", path).Msg("Backend returned an error status")
		return mapStatus(res.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Backend response could not be decoded")
		return errs.NewError(errs.ErrBackendUnavailable)
	}

	return nil
}

// mapStatus converts an upstream HTTP status into an application error.
func mapStatus(status int) *errs.CustomError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errs.NewError(errs.ErrUnauthorized)
	case status == http.StatusNotFound:
		return errs.NewError(errs.ErrNotFound)
	case status >= 500:
		return errs.NewError(errs.ErrBackendUnavailable)
	default:
		return errs.NewError(errs.ErrInvalidParams)
	}
}

// --- Chat rooms ---

// GetChatRoom resolves the room binding a patient and a caregiver. Used before
// a messaging session can start when no room is already known.
func (c *Client) GetChatRoom(ctx context.Context, token, pacilianID, caregiverID string) (RoomLookup, *errs.CustomError) {
	var room RoomLookup
	err := c.do(ctx, token, http.MethodGet, "/api/chat/room/"+pacilianID+"/"+caregiverID, nil, nil, &room)
	if errs.HasCode(err, errs.ErrNotFound) {
		return RoomLookup{}, errs.NewError(errs.ErrRoomNotFound)
	}
	return room, err
}

// GetChatRoomByID fetches one room by its identifier.
func (c *Client) GetChatRoomByID(ctx context.Context, token, roomID string) (RoomLookup, *errs.CustomError) {
	var room RoomLookup
	err := c.do(ctx, token, http.MethodGet, "/api/chat/room/"+roomID, nil, nil, &room)
	if errs.HasCode(err, errs.ErrNotFound) {
		return RoomLookup{}, errs.NewError(errs.ErrRoomNotFound)
	}
	return room, err
}

// GetPacilianChatRooms lists the rooms a patient participates in.
func (c *Client) GetPacilianChatRooms(ctx context.Context, token, userID string) ([]RoomLookup, *errs.CustomError) {
	var envelope roomListEnvelope
	if err := c.do(ctx, token, http.MethodGet, "/api/chat/rooms/pacilian/"+userID, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Rooms, nil
}

// GetCaregiverChatRooms lists the rooms a caregiver participates in.
func (c *Client) GetCaregiverChatRooms(ctx context.Context, token, userID string) ([]RoomLookup, *errs.CustomError) {
	var envelope roomListEnvelope
	if err := c.do(ctx, token, http.MethodGet, "/api/chat/rooms/caregiver/"+userID, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Rooms, nil
}

// GetMessageHistory fetches the message backlog of a room over REST. The
// messaging session normally receives the backlog on its history channel;
// this call backs the room preview in the chat list.
func (c *Client) GetMessageHistory(ctx context.Context, token, roomID string) ([]chat.Message, *errs.CustomError) {
	var messages []chat.Message
	err := c.do(ctx, token, http.MethodGet, "/api/chat/messages/"+roomID, nil, nil, &messages)
	if errs.HasCode(err, errs.ErrNotFound) {
		return nil, errs.NewError(errs.ErrRoomNotFound)
	}
	return messages, err
}

// --- Profiles and consultations ---

// GetProfile fetches a user's profile.
func (c *Client) GetProfile(ctx context.Context, token, userID string) (Profile, *errs.CustomError) {
	var envelope profileEnvelope
	if err := c.do(ctx, token, http.MethodGet, "/api/profile/"+userID, nil, nil, &envelope); err != nil {
		return Profile{}, err
	}

	var profile Profile
	if err := json.Unmarshal(envelope.Result, &profile); err != nil {
		return Profile{}, errs.NewError(errs.ErrBackendUnavailable)
	}
	return profile, nil
}

// UpdateProfile replaces a user's profile.
func (c *Client) UpdateProfile(ctx context.Context, token, userID string, profile Profile) *errs.CustomError {
	return c.do(ctx, token, http.MethodPut, "/api/profile/"+userID, nil, profile, nil)
}

// DeleteProfile removes a user's account.
func (c *Client) DeleteProfile(ctx context.Context, token, userID string) *errs.CustomError {
	return c.do(ctx, token, http.MethodDelete, "/api/profile/"+userID, nil, nil, nil)
}

// GetConsultationHistory fetches the caller's past consultations.
func (c *Client) GetConsultationHistory(ctx context.Context, token string) ([]Consultation, *errs.CustomError) {
	var consultations []Consultation
	err := c.do(ctx, token, http.MethodGet, "/api/consultations/history", nil, nil, &consultations)
	return consultations, err
}

// --- Scheduling ---

// GetCaregiverSchedules lists the caller's availability windows.
func (c *Client) GetCaregiverSchedules(ctx context.Context, token string) ([]Schedule, *errs.CustomError) {
	var schedules []Schedule
	err := c.do(ctx, token, http.MethodGet, "/api/scheduling/caregiver/schedules", nil, nil, &schedules)
	return schedules, err
}

// CreateSchedule adds an availability window.
func (c *Client) CreateSchedule(ctx context.Context, token string, schedule Schedule) *errs.CustomError {
	return c.do(ctx, token, http.MethodPost, "/api/scheduling/caregiver/schedules", nil, schedule, nil)
}

// ModifySchedule moves an availability window.
func (c *Client) ModifySchedule(ctx context.Context, token string, change ModifyScheduleRequest) *errs.CustomError {
	return c.do(ctx, token, http.MethodPut, "/api/scheduling/caregiver/schedules", nil, change, nil)
}

// DeleteSchedule removes an availability window.
func (c *Client) DeleteSchedule(ctx context.Context, token string, schedule Schedule) *errs.CustomError {
	return c.do(ctx, token, http.MethodDelete, "/api/scheduling/caregiver/schedules", nil, schedule, nil)
}

// GetCaregiverConsultations lists consultation requests for the caregiver.
func (c *Client) GetCaregiverConsultations(ctx context.Context, token string) ([]Consultation, *errs.CustomError) {
	var consultations []Consultation
	err := c.do(ctx, token, http.MethodGet, "/api/scheduling/caregiver/consultations", nil, nil, &consultations)
	return consultations, err
}

// AcceptConsultation accepts a pending consultation request.
func (c *Client) AcceptConsultation(ctx context.Context, token string, decision ConsultationDecision) *errs.CustomError {
	return c.do(ctx, token, http.MethodPut, "/api/scheduling/caregiver/consultations/accept", nil, decision, nil)
}

// RejectConsultation rejects a pending consultation request.
func (c *Client) RejectConsultation(ctx context.Context, token string, decision ConsultationDecision) *errs.CustomError {
	return c.do(ctx, token, http.MethodPut, "/api/scheduling/caregiver/consultations/reject", nil, decision, nil)
}

// GetPacilianConsultations lists the patient's consultations.
func (c *Client) GetPacilianConsultations(ctx context.Context, token string) ([]Consultation, *errs.CustomError) {
	var consultations []Consultation
	err := c.do(ctx, token, http.MethodGet, "/api/scheduling/pacilian/consultations", nil, nil, &consultations)
	return consultations, err
}

// FindAvailableCaregivers searches caregivers free in the given window,
// optionally filtered by specialty.
func (c *Client) FindAvailableCaregivers(ctx context.Context, token, startTime, endTime, specialty string) ([]CaregiverSummary, *errs.CustomError) {
	query := url.Values{}
	query.Set("startTime", startTime)
	query.Set("endTime", endTime)
	if specialty != "" && specialty != "all" {
		query.Set("specialty", specialty)
	}

	var caregivers []CaregiverSummary
	err := c.do(ctx, token, http.MethodGet, "/api/scheduling/pacilian/available-caregivers", query, nil, &caregivers)
	return caregivers, err
}

// --- Wallet ---

// TopUp adds funds to the caller's wallet.
func (c *Client) TopUp(ctx context.Context, token string, request TopUpRequest) (json.RawMessage, *errs.CustomError) {
	return c.walletCall(ctx, token, "/api/wallet/topup", request)
}

// Transfer moves funds to another user's wallet.
func (c *Client) Transfer(ctx context.Context, token string, request TransferRequest) (json.RawMessage, *errs.CustomError) {
	return c.walletCall(ctx, token, "/api/wallet/transfer", request)
}

func (c *Client) walletCall(ctx context.Context, token, path string, request any) (json.RawMessage, *errs.CustomError) {
	var envelope walletEnvelope
	if err := c.do(ctx, token, http.MethodPost, path, nil, request, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}
	return envelope.Data, nil
}

// GetTransactions fetches one page of the wallet ledger.
func (c *Client) GetTransactions(ctx context.Context, token string, page, size int) (TransactionPage, *errs.CustomError) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var result TransactionPage
	err := c.do(ctx, token, http.MethodGet, "/api/wallet/transactions", query, nil, &result)
	return result, err
}

// --- Ratings ---

// ListRatedCaregivers lists caregivers with their aggregate ratings.
func (c *Client) ListRatedCaregivers(ctx context.Context, token string) ([]CaregiverSummary, *errs.CustomError) {
	var caregivers []CaregiverSummary
	err := c.do(ctx, token, http.MethodGet, "/api/ratings/doctors", nil, nil, &caregivers)
	return caregivers, err
}

// GetCaregiverRatings lists the ratings submitted for one caregiver.
func (c *Client) GetCaregiverRatings(ctx context.Context, token, caregiverID string) ([]Rating, *errs.CustomError) {
	var ratings []Rating
	err := c.do(ctx, token, http.MethodGet, "/api/ratings/doctor/"+caregiverID, nil, nil, &ratings)
	return ratings, err
}

// CreateRating submits a new rating.
func (c *Client) CreateRating(ctx context.Context, token string, request CreateRatingRequest) *errs.CustomError {
	return c.do(ctx, token, http.MethodPost, "/api/ratings", nil, request, nil)
}

// UpdateRating edits an existing rating.
func (c *Client) UpdateRating(ctx context.Context, token, ratingID string, request CreateRatingRequest) *errs.CustomError {
	return c.do(ctx, token, http.MethodPut, "/api/ratings/"+ratingID, nil, request, nil)
}

// DeleteRating removes a rating.
func (c *Client) DeleteRating(ctx context.Context, token, ratingID string) *errs.CustomError {
	return c.do(ctx, token, http.MethodDelete, "/api/ratings/"+ratingID, nil, nil, nil)
}
