/*
Package identity contains the credential-derived identity model for the client.

This file implements the unverified payload decode. The credential is a
three-segment dot-delimited token; only the middle segment is read. Decoding
never panics across the package boundary: a payload that cannot be decoded
degrades to the sentinel identity and a recoverable warning.
*/
package identity

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"

	"pandacare/internal/pkg/errs"
)

// identity claim keys, in lookup order.
var idClaims = []string{"userId", "sub", "id", "email"}

// role claim keys, in lookup order.
var roleClaims = []string{"role", "userType", "type"}

// Decode extracts the identity from the credential's payload segment without
// verifying the signature. On any decode failure it returns the sentinel
// identity together with a CredentialMalformed error; callers may continue
// with the sentinel but must surface the warning.
func Decode(token string) (Identity, *errs.CustomError) {
	claims, err := payloadClaims(token)
	if err != nil {
		return Sentinel(), err
	}

	id := firstStringClaim(claims, idClaims)
	if id == "" {
		id = SentinelID
	}

	return Identity{
		ID:   id,
		Role: NormalizeRole(firstStringClaim(claims, roleClaims)),
	}, nil
}

// IsExpired reports whether the credential's exp claim is in the past.
// Any decode failure and a missing exp claim both count as expired.
func IsExpired(token string) bool {
	claims, err := payloadClaims(token)
	if err != nil {
		return true
	}

	return !claims.VerifyExpiresAt(time.Now().Unix(), true)
}

// payloadClaims parses the token's payload segment into claims. The primary
// path goes through the JWT parser; tokens it rejects get one more chance via
// a lenient base64 repair, mirroring how sloppily padded or standard-alphabet
// payloads are still readable.
func payloadClaims(token string) (jwt.MapClaims, *errs.CustomError) {
	if !strings.Contains(token, ".") {
		return nil, errs.NewError(errs.ErrCredentialMalformed)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errs.NewError(errs.ErrCredentialMalformed)
	}

	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		return claims, nil
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil, errs.NewError(errs.ErrCredentialMalformed)
	}

	claims = jwt.MapClaims{}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, errs.NewError(errs.ErrCredentialMalformed)
	}

	return claims, nil
}

// decodeSegment converts a payload segment to bytes, normalizing the URL-safe
// alphabet and repairing missing padding.
func decodeSegment(segment string) ([]byte, error) {
	normalized := strings.NewReplacer("-", "+", "_", "/").Replace(segment)

	if rem := len(normalized) % 4; rem > 0 {
		normalized += strings.Repeat("=", 4-rem)
	}

	return base64.StdEncoding.DecodeString(normalized)
}

// firstStringClaim returns the first non-empty string value among keys.
func firstStringClaim(claims jwt.MapClaims, keys []string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
