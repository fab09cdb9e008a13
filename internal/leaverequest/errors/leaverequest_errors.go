package leaverequesterrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only a pending leave request can be decided",
		http.StatusConflict,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeInvalidState,
		"a rejected or cancelled leave request cannot be cancelled",
		http.StatusConflict,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must not be after end date",
		http.StatusBadRequest,
	)
)
