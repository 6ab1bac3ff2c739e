package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandacare/internal/pkg/errs"
)

func TestGetChatRoomForwardsCredential(t *testing.T) {
	var gotAuth, gotRequestID, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(RoomLookup{RoomID: "room-1", PacilianID: "p1", CaregiverID: "c1"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	room, err := client.GetChatRoom(context.Background(), "token-1", "p1", "c1")

	require.Nil(t, err)
	assert.Equal(t, "room-1", room.RoomID)
	assert.Equal(t, "/api/chat/room/p1/c1", gotPath)
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestGetChatRoomNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such room", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetChatRoom(context.Background(), "token-1", "p1", "c1")
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrRoomNotFound))
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		code   int
	}{
		{"unauthorized", http.StatusUnauthorized, errs.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, errs.ErrUnauthorized},
		{"bad request", http.StatusBadRequest, errs.ErrInvalidParams},
		{"server error", http.StatusInternalServerError, errs.ErrBackendUnavailable},
		{"bad gateway", http.StatusBadGateway, errs.ErrBackendUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).GetConsultationHistory(context.Background(), "token-1")
			require.NotNil(t, err)
			assert.True(t, errs.HasCode(err, tc.code), "got %v", err)
		})
	}
}

func TestBackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewClient(server.URL).GetConsultationHistory(context.Background(), "token-1")
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrBackendUnavailable))
}

func TestGetPacilianChatRoomsUnwrapsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/rooms/pacilian/p1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"rooms": []RoomLookup{
				{RoomID: "room-1", PacilianID: "p1", CaregiverID: "c1"},
				{RoomID: "room-2", PacilianID: "p1", CaregiverID: "c2"},
			},
		})
	}))
	defer server.Close()

	rooms, err := NewClient(server.URL).GetPacilianChatRooms(context.Background(), "token-1", "p1")
	require.Nil(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "c2", rooms[1].CaregiverID)
}

func TestGetProfileUnwrapsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result":  Profile{ID: "u1", Name: "Budi", Role: "PACILIAN"},
			"message": "ok",
		})
	}))
	defer server.Close()

	profile, err := NewClient(server.URL).GetProfile(context.Background(), "token-1", "u1")
	require.Nil(t, err)
	assert.Equal(t, "Budi", profile.Name)
}

func TestFindAvailableCaregiversQuery(t *testing.T) {
	var gotQuery map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode([]CaregiverSummary{{ID: "c1", Name: "Dr. Susi"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.FindAvailableCaregivers(context.Background(), "token-1", "2026-09-01T09:00", "2026-09-01T10:00", "cardiology")
	require.Nil(t, err)
	assert.Equal(t, []string{"cardiology"}, gotQuery["specialty"])

	// "all" means no specialty filter.
	_, err = client.FindAvailableCaregivers(context.Background(), "token-1", "2026-09-01T09:00", "2026-09-01T10:00", "all")
	require.Nil(t, err)
	assert.NotContains(t, gotQuery, "specialty")
}

func TestWalletCallChecksEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body TopUpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Amount > 1000 {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "limit exceeded"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"balance": 1500}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	data, err := client.TopUp(context.Background(), "token-1", TopUpRequest{Amount: 500, Method: "BANK_TRANSFER"})
	require.Nil(t, err)
	assert.JSONEq(t, `{"balance":1500}`, string(data))

	_, err = client.TopUp(context.Background(), "token-1", TopUpRequest{Amount: 5000, Method: "BANK_TRANSFER"})
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrInvalidParams))
}
