package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrAlreadyMarked = apperror.New(
		apperror.CodeConflict,
		"attendance is already marked for this date",
		http.StatusConflict,
	)
	ErrInvalidHours = apperror.New(
		apperror.CodeInvalidInput,
		"total hours must be between 0 and 24",
		http.StatusBadRequest,
	)
)
