package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestParseAmount(t *testing.T) {
	data := map[string]uint64{
		"1":        1000000,
		"1.2":      1200000,
		"0.000001": 1,
		"0":        0,
		"1000000":  1000000000000,
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			got, err := ParseAmount(k)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, got)
		})
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, s := range []string{"0.0000001", "-1", "1e30"} {
		t.Run(s, func(t *testing.T) {
			if _, err := ParseAmount(s); err == nil {
				t.Error("should reject", s)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	data := map[uint64]string{
		1000000: "1",
		1200000: "1.2",
		1:       "0.000001",
		0:       "0",
	}

	for k, v := range data {
		assert.Equal(t, v, FormatAmount(k))
	}
}
