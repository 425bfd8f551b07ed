package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	tests := []struct {
		want   string
		amount int64
	}{
		{amount: 500, want: "500 VND"},
		{amount: 20000, want: "20.000 VND"},
		{amount: 1250000, want: "1.250.000 VND"},
		{amount: 2000000000, want: "2.000.000.000 VND"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatVND(tt.amount))
	}
}
