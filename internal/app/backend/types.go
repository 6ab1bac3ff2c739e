/*
Package backend is the REST client for the external care backend.

This file defines the request and response shapes exchanged with the backend.
The backend owns all persistence, scheduling conflict resolution, payment
processing, and rating aggregation; these types only mirror its contracts.
*/
package backend

import "encoding/json"

// RoomLookup is the backend's description of a chat room binding a patient
// and a caregiver.
type RoomLookup struct {
	RoomID      string `json:"roomId"`
	PacilianID  string `json:"pacilianId"`
	CaregiverID string `json:"caregiverId"`
}

// roomListEnvelope wraps the room list endpoints' responses.
type roomListEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Rooms   []RoomLookup `json:"rooms"`
}

// profileEnvelope wraps the profile endpoints' responses.
type profileEnvelope struct {
	Result  json.RawMessage `json:"result"`
	Message string          `json:"message"`
}

// Profile is a user account profile.
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
	Speciality  string `json:"speciality,omitempty"`
	WorkAddress string `json:"workAddress,omitempty"`
}

// Consultation is one scheduled or past consultation between a patient and a
// caregiver.
type Consultation struct {
	PacilianID  string `json:"pacilianId"`
	CaregiverID string `json:"caregiverId"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status,omitempty"`
}

// Schedule is one availability window offered by a caregiver.
type Schedule struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ModifyScheduleRequest moves an existing availability window.
type ModifyScheduleRequest struct {
	OldStartTime string `json:"oldStartTime"`
	OldEndTime   string `json:"oldEndTime"`
	NewStartTime string `json:"newStartTime"`
	NewEndTime   string `json:"newEndTime"`
}

// ConsultationDecision accepts or rejects a pending consultation request.
type ConsultationDecision struct {
	PacilianID string `json:"pacilianId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// CaregiverSummary describes an available caregiver in search results.
type CaregiverSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality,omitempty"`
}

// TopUpRequest adds funds to the user's wallet. Card fields apply to
// CREDIT_CARD, bank fields to BANK_TRANSFER.
type TopUpRequest struct {
	Amount         float64 `json:"amount"`
	Method         string  `json:"method"`
	CardNumber     string  `json:"cardNumber,omitempty"`
	CVV            string  `json:"cvv,omitempty"`
	ExpiryDate     string  `json:"expiryDate,omitempty"`
	CardholderName string  `json:"cardholderName,omitempty"`
	BankName       string  `json:"bankName,omitempty"`
	AccountNumber  string  `json:"accountNumber,omitempty"`
}

// TransferRequest moves funds to another user's wallet.
type TransferRequest struct {
	ReceiverEmail string  `json:"receiverEmail"`
	Amount        float64 `json:"amount"`
	Note          string  `json:"note,omitempty"`
}

// walletEnvelope wraps the wallet endpoints' responses.
type walletEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Transaction is one wallet ledger entry.
type Transaction struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
	Note      string  `json:"note,omitempty"`
}

// TransactionPage is one page of the wallet transaction history.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"totalPages"`
}

// Rating is one patient rating of a caregiver.
type Rating struct {
	ID          string `json:"id"`
	CaregiverID string `json:"caregiverId"`
	PacilianID  string `json:"pacilianId"`
	Score       int    `json:"score"`
	Comment     string `json:"comment,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// CreateRatingRequest submits a new rating for a caregiver.
type CreateRatingRequest struct {
	CaregiverID string `json:"caregiverId"`
	Score       int    `json:"score"`
	Comment     string `json:"comment,omitempty"`
}
