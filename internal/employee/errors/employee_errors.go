package employeeerrors

import (
	"net/http"

	"emp-portal/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"All fields are required",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid email format",
		http.StatusBadRequest,
	)
	ErrInvalidMobile = apperror.New(
		apperror.CodeInvalidInput,
		"Mobile must be 10 digits",
		http.StatusBadRequest,
	)
	ErrInvalidImageType = apperror.New(
		apperror.CodeInvalidInput,
		"Only jpg/png allowed",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusConflict,
	)
	ErrMobileAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Mobile number already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
