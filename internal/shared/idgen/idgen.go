// Package idgen generates the record identifiers used across the system:
// a three-letter type prefix followed by a seven-digit random numeral,
// e.g. EMP1234567 or REQ7654321.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	lowerBound = 1000000
	upperBound = 9999999
)

// Prefixes for every persisted record type.
const (
	PrefixEmployee     = "EMP"
	PrefixLeaveType    = "TYP"
	PrefixLeaveBalance = "LEV"
	PrefixLeaveRequest = "REQ"
	PrefixAttendance   = "ATD"
	PrefixSalaryRecord = "RCD"
	PrefixSalary       = "SLY"
	PrefixUser         = "USR"
	PrefixLoginLog     = "LOG"
)

var span = big.NewInt(upperBound - lowerBound + 1)

// New returns prefix + 7 random digits.
func New(prefix string) string {
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// treat that as unrecoverable.
		panic(fmt.Sprintf("idgen: %v", err))
	}
	return fmt.Sprintf("%s%d", prefix, n.Int64()+lowerBound)
}
