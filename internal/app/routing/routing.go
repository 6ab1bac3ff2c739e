// Package routing maps a participant role to its home dashboard path.
// It is the single place where role-based navigation is decided; pages and
// the terminal client all call HomePath instead of comparing role strings.
package routing

import "pandacare/internal/app/identity"

const (
	// CaregiverHome is the dashboard path for caregiver accounts.
	CaregiverHome = "/scheduling/caregiver"

	// PacilianHome is the dashboard path for patient accounts.
	PacilianHome = "/scheduling/pacilian"
)

// HomePath returns the dashboard path for the given identity's role.
// Every non-caregiver role, including the sentinel, lands on the pacilian side.
func HomePath(id identity.Identity) string {
	if id.Role == identity.RoleCaregiver {
		return CaregiverHome
	}
	return PacilianHome
}
