package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "Poproszę latte", "Poproszę latte"},
		{"Safe Controls", "Linia1\nLinia2\tTab", "Linia1\nLinia2\tTab"},
		{"ANSI Code", "\x1b[31mlatte\x1b[0m", "[31mlatte[0m"},
		{"Null Byte", "lat\x00te", "latte"},
		{"Surrounding Space", "  espresso \n", "espresso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSanitizeInput_Rejects(t *testing.T) {
	_, err := SanitizeInput("\xff\xfe")
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = SanitizeInput(" \x07 ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestMaxInputSize_Env(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	assert.Equal(t, 8, MaxInputSize())
	_, err := SanitizeInput("123456789")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	t.Setenv(EnvMaxInputSize, "nonsense")
	assert.Equal(t, DefaultMaxInputSize, MaxInputSize())
}
