package models

import "time"

// LoginRequest represents an authentication login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"abogado@despacho.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required" example:"María García"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ForgotPasswordRequest requests a password-reset email
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a password-reset token
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateProfileRequest updates the current user's profile
type UpdateProfileRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

// ChangePasswordRequest changes the current user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// AcceptInvitationRequest represents the invitation acceptance form. The
// password confirmation is checked locally before any backend call.
type AcceptInvitationRequest struct {
	Token           string `json:"token" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ClientRequest creates or updates a client record
type ClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CaseRequest creates or updates a case
type CaseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ClientID    string `json:"client_id" binding:"required"`
}

// CaseUpdateRequest adds a progress note to a case
type CaseUpdateRequest struct {
	Note string `json:"note" binding:"required"`
}

// CalendarEventRequest creates or updates a calendar event
type CalendarEventRequest struct {
	Title    string    `json:"title" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	CaseID   string    `json:"case_id"`
	Location string    `json:"location"`
}

// InvoiceRequest creates an invoice
type InvoiceRequest struct {
	ClientID string    `json:"client_id" binding:"required"`
	CaseID   string    `json:"case_id"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	DueDate  time.Time `json:"due_date" binding:"required"`
}

// PaymentRequest records a payment against an invoice
type PaymentRequest struct {
	InvoiceID string  `json:"invoice_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method"`
}
