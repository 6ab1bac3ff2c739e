package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandacare/internal/app/backend"
	"pandacare/internal/app/routing"
	"pandacare/internal/configs"
	"pandacare/internal/pkg/errs"
	"pandacare/internal/pkg/resp"
)

// gatewayToken builds an unsigned bearer credential for the given claims.
func gatewayToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// newGateway wires the full router against a fake upstream backend.
func newGateway(upstream http.HandlerFunc) (*httptest.Server, func()) {
	backendServer := httptest.NewServer(upstream)

	deps := &AppDeps{
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           3000,
			AllowedOrigins: []string{},
			BackendOrigin:  backendServer.URL,
		},
		Backend: backend.NewClient(backendServer.URL),
	}

	gateway := httptest.NewServer(Router(deps))
	return gateway, func() {
		gateway.Close()
		backendServer.Close()
	}
}

// doJSON performs one request against the gateway and decodes the envelope.
func doJSON(t *testing.T, method, url, token, body string) (int, resp.JSONResponse) {
	t.Helper()

	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var envelope resp.JSONResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&envelope))
	return res.StatusCode, envelope
}

func TestHealth(t *testing.T) {
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {})
	defer cleanup()

	status, envelope := doJSON(t, http.MethodGet, gateway.URL+"/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, envelope.Code)
}

func TestHomePathByRole(t *testing.T) {
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {})
	defer cleanup()

	cases := []struct {
		name string
		role string
		want string
	}{
		{"caregiver", "CAREGIVER", routing.CaregiverHome},
		{"pacilian", "PACILIAN", routing.PacilianHome},
		{"unknown role", "ADMIN", routing.PacilianHome},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := gatewayToken(t, map[string]any{"sub": "u1", "role": tc.role})

			status, envelope := doJSON(t, http.MethodGet, gateway.URL+"/api/session/home", token, "")
			require.Equal(t, http.StatusOK, status)

			data, ok := envelope.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.want, data["home"])
		})
	}
}

func TestHomePathAnonymous(t *testing.T) {
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {})
	defer cleanup()

	want := errs.NewError(errs.ErrCredentialMissing)

	status, envelope := doJSON(t, http.MethodGet, gateway.URL+"/api/session/home", "", "")
	assert.Equal(t, want.Status, status)
	assert.Equal(t, want.Code, envelope.Code)
}

func TestChatRoomProxyForwardsCredential(t *testing.T) {
	token := gatewayToken(t, map[string]any{"sub": "p1", "role": "PACILIAN"})

	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat/room/p1/c1", r.URL.Path)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(backend.RoomLookup{RoomID: "room-1", PacilianID: "p1", CaregiverID: "c1"})
	})
	defer cleanup()

	status, envelope := doJSON(t, http.MethodGet, gateway.URL+"/api/chat/room/p1/c1", token, "")
	require.Equal(t, http.StatusOK, status)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "room-1", data["roomId"])
}

func TestChatRoomNotFound(t *testing.T) {
	token := gatewayToken(t, map[string]any{"sub": "p1", "role": "PACILIAN"})

	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such room", http.StatusNotFound)
	})
	defer cleanup()

	want := errs.NewError(errs.ErrRoomNotFound)

	status, envelope := doJSON(t, http.MethodGet, gateway.URL+"/api/chat/room/p1/c1", token, "")
	assert.Equal(t, want.Status, status)
	assert.Equal(t, want.Code, envelope.Code)
}

func TestListChatRoomsScopedByRole(t *testing.T) {
	var gotPath string
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "rooms": []backend.RoomLookup{}})
	})
	defer cleanup()

	caregiver := gatewayToken(t, map[string]any{"sub": "c1", "role": "CAREGIVER"})
	status, _ := doJSON(t, http.MethodGet, gateway.URL+"/api/chat/rooms", caregiver, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/api/chat/rooms/caregiver/c1", gotPath)

	pacilian := gatewayToken(t, map[string]any{"sub": "p1", "role": "PACILIAN"})
	status, _ = doJSON(t, http.MethodGet, gateway.URL+"/api/chat/rooms", pacilian, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/api/chat/rooms/pacilian/p1", gotPath)
}

func TestProfileRequiresCredential(t *testing.T) {
	upstreamCalled := false
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	})
	defer cleanup()

	want := errs.NewError(errs.ErrCredentialMissing)

	status, envelope := doJSON(t, http.MethodGet, gateway.URL+"/api/profile/", "", "")
	assert.Equal(t, want.Status, status)
	assert.Equal(t, want.Code, envelope.Code)
	assert.False(t, upstreamCalled)
}

func TestCreateRatingRejectsBadScore(t *testing.T) {
	upstreamCalled := false
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	})
	defer cleanup()

	token := gatewayToken(t, map[string]any{"sub": "p1", "role": "PACILIAN"})
	want := errs.NewError(errs.ErrInvalidParams)

	status, envelope := doJSON(t, http.MethodPost, gateway.URL+"/api/rating/", token,
		`{"caregiverId":"c1","score":9}`)
	assert.Equal(t, want.Status, status)
	assert.Equal(t, want.Code, envelope.Code)
	assert.False(t, upstreamCalled)
}

func TestTopUpValidatesShape(t *testing.T) {
	upstreamCalled := false
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	})
	defer cleanup()

	token := gatewayToken(t, map[string]any{"sub": "p1", "role": "PACILIAN"})
	want := errs.NewError(errs.ErrInvalidParams)

	status, envelope := doJSON(t, http.MethodPost, gateway.URL+"/api/payment/topup", token,
		`{"amount":-5,"method":"BANK_TRANSFER"}`)
	assert.Equal(t, want.Status, status)
	assert.Equal(t, want.Code, envelope.Code)
	assert.False(t, upstreamCalled)
}

func TestUnknownRouteReturns404(t *testing.T) {
	gateway, cleanup := newGateway(func(w http.ResponseWriter, r *http.Request) {})
	defer cleanup()

	res, err := http.Get(gateway.URL + "/api/nope")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
