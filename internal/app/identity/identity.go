/*
Package identity contains the credential-derived identity model for the client.

It decodes the bearer credential's payload segment into a user identifier and a
normalized role without verifying the signature (verification belongs to the
care backend), checks expiry, and defines the session store capability used by
every component that needs the credential.
*/
package identity

import "strings"

// Role is the closed set of participant roles in the care system.
type Role string

const (
	// RolePacilian identifies a patient account.
	RolePacilian Role = "PACILIAN"

	// RoleCaregiver identifies a caregiver account.
	RoleCaregiver Role = "CAREGIVER"

	// RoleUnknown is the sentinel role used when the credential carries no
	// recognizable role claim.
	RoleUnknown Role = "USER"
)

// SentinelID is the placeholder identifier used when the credential payload
// cannot be decoded. Operations that require a real identity must reject it.
const SentinelID = "User"

// Identity is the user identity derived once from the credential.
// It is immutable for the lifetime of the owning view.
type Identity struct {
	ID   string
	Role Role
}

// Sentinel returns the degraded identity used when decoding fails.
func Sentinel() Identity {
	return Identity{ID: SentinelID, Role: RoleUnknown}
}

// IsSentinel reports whether the identity is the decode-failure placeholder.
func (i Identity) IsSentinel() bool {
	return i.ID == "" || i.ID == SentinelID
}

// NormalizeRole folds the free-form role claim into the closed Role set.
// Comparison is case-insensitive so downstream code never repeats
// 'CAREGIVER'/'caregiver' style checks.
func NormalizeRole(raw string) Role {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleCaregiver):
		return RoleCaregiver
	case string(RolePacilian):
		return RolePacilian
	default:
		return RoleUnknown
	}
}
