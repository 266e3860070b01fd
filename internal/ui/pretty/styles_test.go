package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	rendered := styles.Bold.Render("test")
	assert.Contains(t, rendered, "\x1b[", "color styles render ANSI sequences on any writer")
	assert.Contains(t, rendered, "test")
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	text := "test"
	assert.Equal(t, text, styles.Bold.Render(text), "No-color Bold should not add formatting")
	assert.Equal(t, text, styles.Link.Render(text), "No-color Link should not add formatting")
	assert.Equal(t, text, styles.Heading1.Render(text), "No-color Heading1 should not add formatting")
}

func TestStyles_Compose(t *testing.T) {
	styles := pretty.NewStyles(true)

	composed := styles.Compose(styles.Heading,
		[]richtext.Style{richtext.Italic, richtext.Link("k")}, true)

	assert.True(t, composed.GetBold(), "block style is inherited")
	assert.True(t, composed.GetItalic(), "outer inline style is inherited")
	assert.True(t, composed.GetUnderline(), "inner inline style applies")
	assert.Equal(t, styles.Link.GetForeground(), composed.GetForeground(), "inner style wins over the block color")

	unresolved := styles.Compose(styles.Base, []richtext.Style{richtext.Link("k")}, false)
	assert.Equal(t, styles.UnresolvedLink.GetForeground(), unresolved.GetForeground())
}

func TestStyles_HeadingStyle(t *testing.T) {
	styles := pretty.NewStyles(true)

	assert.True(t, styles.HeadingStyle(1).GetUnderline())
	assert.False(t, styles.HeadingStyle(2).GetUnderline())
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	result := pretty.IsColorEnabled("always", &buf)
	assert.True(t, result, "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	result := pretty.IsColorEnabled("never", os.Stdout)
	assert.False(t, result, "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	result := pretty.IsColorEnabled("auto", &buf)
	assert.False(t, result, "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := pretty.IsColorEnabled("auto", os.Stdout)
	assert.False(t, result, "auto mode with NO_COLOR set should return false")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode with non-TTY should return false (auto behavior)")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode with non-TTY should return false (auto behavior)")
}

func TestTerminalWidth_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 42, pretty.TerminalWidth(&buf, 42))
}
