package metric_test

import (
	"testing"

	"github.com/hupe1980/dimgo/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "julian date", want: "day"},
		{input: "shell", want: "1"},
		{input: "cos(mu)", want: "1"},
		{input: "e-", want: "e"},
		{input: "# / cm^2 s sr MeV", want: "# / (cm^2 s sr MeV/nuc)"},
		{input: "m/s", want: "m / (s)"},
		{input: "kg m^2 / s^2", want: "kg m^2 / (s^2)"},
		{input: "J", want: "J"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, metric.Standardize(tt.input))
		})
	}
}

// Standardized output always parses, and the solidus regrouping preserves
// the algebraic value.
func TestStandardize_OutputParses(t *testing.T) {
	inputs := []string{
		"julian date",
		"shell",
		"cos(mu)",
		"e-",
		"# / cm^2 s sr MeV",
		"m/s",
	}
	for _, input := range inputs {
		u, err := metric.Parse(metric.Standardize(input))
		require.NoError(t, err, "input %q", input)
		assert.NotEmpty(t, u.String())
	}

	flux := metric.MustParse(metric.Standardize("# / cm^2 s sr MeV"))
	assert.Equal(t, "# MeV^-1 cm^-2 nuc s^-1 sr^-1", flux.String())
}
