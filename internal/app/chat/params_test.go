package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandacare/internal/pkg/errs"
)

func TestResolveRoomRef(t *testing.T) {
	ref, err := ResolveRoomRef(map[string]string{
		"roomId":        "room-1",
		"recipientId":   "c1",
		"recipientName": "Dr. Susi",
		"recipientType": "CAREGIVER",
	})
	require.Nil(t, err)
	assert.Equal(t, "room-1", ref.RoomID)
	assert.Equal(t, "c1", ref.RecipientID)
	assert.Equal(t, "Dr. Susi", ref.RecipientName)
	assert.Equal(t, "CAREGIVER", ref.RecipientType)
}

func TestResolveRoomRefMissingParams(t *testing.T) {
	cases := []struct {
		name   string
		params map[string]string
	}{
		{"empty", map[string]string{}},
		{"nil", nil},
		{"missing room", map[string]string{"recipientId": "c1"}},
		{"missing recipient", map[string]string{"roomId": "room-1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveRoomRef(tc.params)
			require.NotNil(t, err)
			assert.True(t, errs.HasCode(err, errs.ErrMissingRoomParams))
		})
	}
}

func TestRoomRefLabel(t *testing.T) {
	assert.Equal(t, "Dr. Susi", RoomRef{RecipientName: "Dr. Susi"}.Label())
	assert.Equal(t, GenericRecipientLabel, RoomRef{}.Label())
}
