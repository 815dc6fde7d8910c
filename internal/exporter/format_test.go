package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dwellcli/pkg/contracts/domain"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		precision int32
		expected  string
	}{
		{"zero value", 0.0, 2, "0.00"},
		{"positive integer", 123.0, 4, "123.0000"},
		{"negative value", -9.999999999999998, 4, "-10.0000"},
		{"binary noise removed", 30.000000000000004, 4, "30.0000"},
		{"rounds half away from zero", 1087.125, 2, "1087.13"},
		{"zero precision", 1087.5, 0, "1088"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFloat(tt.input, tt.precision))
		})
	}
}

func TestFormatNullFloat(t *testing.T) {
	assert.Equal(t, "", formatNullFloat(domain.NullFloat{}, 4))
	assert.Equal(t, "12.50", formatNullFloat(domain.NewNullFloat(12.5), 2))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "1234567", formatInt(1234567))
	assert.Equal(t, "0", formatInt(0))
}

func TestNullableCell(t *testing.T) {
	assert.Nil(t, nullableCell(domain.NullFloat{}, 4))
	assert.Equal(t, 4.5455, nullableCell(domain.NewNullFloat(4.545454), 4))
	assert.Equal(t, 30.0, roundFloat(30.000000000000004, 4))
}
