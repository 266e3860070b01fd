package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorGFM, cfg.Flavor)
	assert.Equal(t, config.DefaultIndentStep, cfg.IndentStep)
	assert.Equal(t, config.MatchExact, cfg.LabelMatching)
	assert.Equal(t, config.FormatTerminal, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.False(t, cfg.DetectLanguageEnabled())
	assert.True(t, cfg.HyperlinksEnabled())
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr []error
	}{
		{
			name: "zero value is valid",
			cfg:  config.Config{},
		},
		{
			name:    "bad flavor",
			cfg:     config.Config{Flavor: "pandoc"},
			wantErr: []error{config.ErrInvalidFlavor},
		},
		{
			name:    "bad format",
			cfg:     config.Config{Format: "html"},
			wantErr: []error{config.ErrInvalidFormat},
		},
		{
			name:    "bad matching",
			cfg:     config.Config{LabelMatching: "fuzzy"},
			wantErr: []error{config.ErrInvalidMatching},
		},
		{
			name:    "bad color",
			cfg:     config.Config{Color: "sometimes"},
			wantErr: []error{config.ErrInvalidColor},
		},
		{
			name:    "multi character bullet",
			cfg:     config.Config{Bullet: "->"},
			wantErr: []error{config.ErrInvalidBullet},
		},
		{
			name: "unicode bullet",
			cfg:  config.Config{Bullet: "•"},
		},
		{
			name: "ignore patterns",
			cfg:  config.Config{Ignore: []string{"vendor/**", "**/CHANGELOG.md"}},
		},
		{
			name:    "unterminated ignore pattern",
			cfg:     config.Config{Ignore: []string{"docs/[a-"}},
			wantErr: []error{config.ErrInvalidIgnore},
		},
		{
			name:    "all problems reported",
			cfg:     config.Config{IndentStep: -1, Width: -5},
			wantErr: []error{config.ErrInvalidIndentStep, config.ErrInvalidWidth},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestNilConfigAccessors(t *testing.T) {
	t.Parallel()

	var cfg *config.Config
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.DetectLanguageEnabled())
	assert.False(t, cfg.HyperlinksEnabled())
}
