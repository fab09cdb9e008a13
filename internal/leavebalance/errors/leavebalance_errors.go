package leavebalanceerrors

import (
	"fmt"
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found for this employee and leave type",
		http.StatusNotFound,
	)
	ErrLeavesExhausted = apperror.New(
		apperror.CodeLeavesExhausted,
		"leave count is exhausted",
		http.StatusConflict,
	)
)

// LeavesExhausted names the exhausted type in the message, mirroring
// the "<type> count is exhausted." wording users already know.
func LeavesExhausted(typeName string) *apperror.AppError {
	if typeName == "" {
		return ErrLeavesExhausted
	}
	return apperror.New(
		apperror.CodeLeavesExhausted,
		fmt.Sprintf("%s count is exhausted.", typeName),
		http.StatusConflict,
	)
}
