/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to their CustomError template, used to
standardize HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// A zero Status falls back to http.StatusOK when the error is constructed.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrNotFound:             {Code: ErrNotFound, Message: "The requested resource was not found.", Status: http.StatusNotFound},
	ErrMissingRoomParams:    {Code: ErrMissingRoomParams, Message: "Chat room information is missing. Please go back and try again.", Status: http.StatusBadRequest},

	// 2xxx: Chat Session Errors
	ErrRoomNotFound:        {Code: ErrRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},
	ErrSessionActive:       {Code: ErrSessionActive, Message: "A chat session is already in progress."},
	ErrSessionNotConnected: {Code: ErrSessionNotConnected, Message: "You are not connected to the chat."},

	// 3xxx: Credential and Authorization Errors
	ErrCredentialMissing:   {Code: ErrCredentialMissing, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrCredentialExpired:   {Code: ErrCredentialExpired, Message: "Your session has expired. Please sign in again.", Status: http.StatusUnauthorized},
	ErrCredentialMalformed: {Code: ErrCredentialMalformed, Message: "Your session could not be verified. Some features may be limited."},
	ErrUnauthorized:        {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx: Transport Errors
	ErrTransportConnect: {Code: ErrTransportConnect, Message: "Could not connect to the chat service. Please try again."},
	ErrTransportClosed:  {Code: ErrTransportClosed, Message: "Connection to the chat service was lost. Please reopen the chat."},

	// 5xxx: Internal and Upstream System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrBackendUnavailable: {Code: ErrBackendUnavailable, Message: "The service is temporarily unavailable. Please try again later.", Status: http.StatusBadGateway},
}
