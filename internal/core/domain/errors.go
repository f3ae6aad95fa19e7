package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")

	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrFieldNotFound        = errors.New("supplier field not found")
	ErrFieldExists          = errors.New("supplier field already exists")
	ErrRequestNotFound      = errors.New("supplier request not found")
	ErrRequestInvalid       = errors.New("supplier request is missing required fields")
	ErrInvalidRequestStatus = errors.New("invalid request status")
	ErrReviewInvalid        = errors.New("invalid review")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrBranchNotFound       = errors.New("branch not found")
	ErrResetTokenInvalid    = errors.New("reset token invalid or expired")
	ErrInvalidPeriod        = errors.New("invalid summary period")
)
