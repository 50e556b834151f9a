package service

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrListingInvalid        = errors.New("listing invalid")
	ErrDuplicateListingID    = errors.New("duplicate listing id")
	ErrNoFiles               = errors.New("no files provided")
	ErrUploadRejected        = errors.New("upload rejected")
	ErrUploadFailed          = errors.New("upload failed")
	ErrGenerationFailed      = errors.New("failed to generate product information from image")
	ErrVisionNotConfigured   = errors.New("vision service credentials not configured")
	ErrLearningInputMissing  = errors.New("original and edited listings are required")
	ErrQuoteFieldsMissing    = errors.New("customer name, email and products are required")
	ErrQuoteEmailInvalid     = errors.New("invalid customer email")
	ErrNoRecipients          = errors.New("no email recipients configured")
	ErrEmailDisabled         = errors.New("email service disabled")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrSessionInvalid        = errors.New("admin session invalid")
	ErrRecipientInvalid      = errors.New("recipient invalid")
	ErrRecipientIndexInvalid = errors.New("recipient index out of range")
	ErrExcelInvalid          = errors.New("excel file invalid")
	ErrQueueUnavailable      = errors.New("queue unavailable")
)
