package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrSalaryNotConfigured = apperror.New(
		apperror.CodeNotFound,
		"cost to company is not configured for this employee",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary record not found",
		http.StatusNotFound,
	)
	ErrInvalidQuarter = apperror.New(
		apperror.CodeInvalidQuarter,
		"quarter must be one of Quarter 1, Quarter 2, Quarter 3 or Quarter 4",
		http.StatusNotFound,
	)
)
