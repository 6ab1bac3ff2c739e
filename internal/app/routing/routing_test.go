package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pandacare/internal/app/identity"
)

func TestHomePath(t *testing.T) {
	cases := []struct {
		name string
		id   identity.Identity
		want string
	}{
		{"caregiver", identity.Identity{ID: "c1", Role: identity.RoleCaregiver}, CaregiverHome},
		{"pacilian", identity.Identity{ID: "p1", Role: identity.RolePacilian}, PacilianHome},
		{"unknown role", identity.Identity{ID: "u1", Role: identity.RoleUnknown}, PacilianHome},
		{"sentinel", identity.Sentinel(), PacilianHome},
		{"zero identity", identity.Identity{}, PacilianHome},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HomePath(tc.id))
		})
	}
}
