package chat

import "pandacare/internal/pkg/errs"

// GenericRecipientLabel is shown when navigation did not carry a display name.
const GenericRecipientLabel = "Chat Partner"

// RoomRef identifies the conversation a session is scoped to. RoomID and
// RecipientID are required; the display fields are optional.
type RoomRef struct {
	RoomID        string
	RecipientID   string
	RecipientName string
	RecipientType string
}

// Label returns the recipient's display name, falling back to a generic label.
func (r RoomRef) Label() string {
	if r.RecipientName == "" {
		return GenericRecipientLabel
	}
	return r.RecipientName
}

// ResolveRoomRef derives the session's room reference from navigation
// parameters. It fails closed with ErrMissingRoomParams when either required
// identifier is absent; callers must show a terminal error and not connect.
func ResolveRoomRef(params map[string]string) (RoomRef, *errs.CustomError) {
	ref := RoomRef{
		RoomID:        params["roomId"],
		RecipientID:   params["recipientId"],
		RecipientName: params["recipientName"],
		RecipientType: params["recipientType"],
	}

	if ref.RoomID == "" || ref.RecipientID == "" {
		return RoomRef{}, errs.NewError(errs.ErrMissingRoomParams)
	}

	return ref, nil
}
