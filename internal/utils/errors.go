package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrMissingToken       = errors.New("MISSING_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrSignupClosed       = errors.New("SIGNUP_CLOSED")
	ErrInvalidInput       = errors.New("INVALID_INPUT")
	ErrTooManyLines       = errors.New("TOO_MANY_LINES")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrQuoteNotFound      = errors.New("QUOTE_NOT_FOUND")
	ErrAlreadyContract    = errors.New("ALREADY_CONTRACT")
	ErrLeadNotFound       = errors.New("LEAD_NOT_FOUND")
	ErrTemplateNotFound   = errors.New("TEMPLATE_NOT_FOUND")
	ErrNotificationGone   = errors.New("NOTIFICATION_NOT_FOUND")
	ErrInvalidStatus      = errors.New("INVALID_STATUS")
	ErrNoRecipient        = errors.New("NO_RECIPIENT")
	ErrMessagingDisabled  = errors.New("MESSAGING_DISABLED")
)
