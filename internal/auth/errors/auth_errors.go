package autherrors

import (
	"net/http"

	"emp-portal/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid login details",
		http.StatusUnauthorized,
	)
	ErrMissingCredentials = apperror.New(
		apperror.CodeInvalidInput,
		"All fields required",
		http.StatusBadRequest,
	)
)
