package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/config"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"empty defaults to terminal", "", config.FormatTerminal, false},
		{"terminal", "terminal", config.FormatTerminal, false},
		{"plain", "plain", config.FormatPlain, false},
		{"text alias", "text", config.FormatPlain, false},
		{"json upper", "JSON", config.FormatJSON, false},
		{"unknown", "sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlavor(t *testing.T) {
	t.Parallel()

	got, err := config.ParseFlavor(" GFM ")
	require.NoError(t, err)
	assert.Equal(t, config.FlavorGFM, got)

	_, err = config.ParseFlavor("markdown-it")
	require.ErrorIs(t, err, config.ErrInvalidFlavor)
}
