package leavetypeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeExists = apperror.New(
		apperror.CodeConflict,
		"leave type already exists",
		http.StatusConflict,
	)
	ErrInvalidEntitlement = apperror.New(
		apperror.CodeInvalidInput,
		"number_of_leaves must be zero or positive",
		http.StatusBadRequest,
	)
)
