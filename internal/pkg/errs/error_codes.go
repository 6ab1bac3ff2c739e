/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system failures both internally
and in responses sent to clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON could not be parsed.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 1005

	// ErrNotFound indicates that the requested resource does not exist upstream.
	ErrNotFound = 1006

	// ErrMissingRoomParams indicates that a chat session was requested without the
	// required room or recipient identifiers. Terminal; callers must not retry.
	ErrMissingRoomParams = 1101
)

// 2xxx: Chat Session Errors
const (
	// ErrRoomNotFound indicates that the referenced chat room does not exist.
	ErrRoomNotFound = 2101

	// ErrSessionActive indicates that a session start was attempted while a
	// previous session on the same manager had not been stopped.
	ErrSessionActive = 2201

	// ErrSessionNotConnected indicates a send was attempted outside the connected state.
	ErrSessionNotConnected = 2202
)

// 3xxx: Credential and Authorization Errors
const (
	// ErrCredentialMissing indicates that no bearer credential is stored.
	// Callers redirect the user to the login flow.
	ErrCredentialMissing = 3001

	// ErrCredentialExpired indicates that the stored credential has expired.
	ErrCredentialExpired = 3002

	// ErrCredentialMalformed indicates that the credential payload could not be
	// decoded into a usable identity.
	ErrCredentialMalformed = 3003

	// ErrUnauthorized indicates that the backend rejected the supplied credential.
	ErrUnauthorized = 3101
)

// 4xxx: Transport Errors
const (
	// ErrTransportConnect indicates that the messaging connection could not be established.
	ErrTransportConnect = 4001

	// ErrTransportClosed indicates that an established messaging connection dropped.
	ErrTransportClosed = 4002
)

// 5xxx: Internal and Upstream System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000

	// ErrBackendUnavailable indicates that the external REST backend could not be
	// reached or returned a server-side failure.
	ErrBackendUnavailable = 5101
)
