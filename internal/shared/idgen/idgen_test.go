package idgen_test

import (
	"testing"

	"go-payroll/internal/shared/idgen"

	"github.com/stretchr/testify/assert"
)

func TestNewFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := idgen.New(idgen.PrefixLeaveRequest)
		assert.Len(t, id, 10)
		assert.Equal(t, "REQ", id[:3])
		for _, c := range id[3:] {
			assert.True(t, c >= '0' && c <= '9')
		}
		assert.NotEqual(t, '0', rune(id[3]))
	}
}
