package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input  string
		want   Severity
		wantOK bool
	}{
		{input: "error", want: SeverityError, wantOK: true},
		{input: "Warning", want: SeverityWarning, wantOK: true},
		{input: "INFO", want: SeverityInfo, wantOK: true},
		{input: "hint", want: SeverityHint, wantOK: true},
		{input: "fatal", want: SeverityWarning, wantOK: false},
		{input: "", want: SeverityWarning, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverityText(t *testing.T) {
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityHint} {
		text, err := sev.MarshalText()
		require.NoError(t, err)

		var back Severity
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, sev, back)
	}

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("fatal")))
}
