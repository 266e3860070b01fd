package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
)

// flagColumnGap is the minimum run of spaces pflag puts between a flag
// and its description.
const flagColumnGap = "  "

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles. Without color every style is a no-op.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	renderer := lipgloss.NewRenderer(io.Discard)
	if !colorEnabled {
		renderer.SetColorProfile(termenv.Ascii)
		plain := renderer.NewStyle()
		return &HelpStyles{
			Command: plain, Heading: plain, Subcommand: plain,
			Flag: plain, Example: plain, Dim: plain,
		}
	}

	renderer.SetColorProfile(termenv.ANSI256)
	return &HelpStyles{
		Command:    renderer.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    renderer.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       renderer.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    renderer.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:        renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":                 h.styles.Command.Render,
		"heading":                 h.styles.Heading.Render,
		"subcommand":              h.styles.Subcommand.Render,
		"example":                 h.styles.Example.Render,
		"dim":                     h.styles.Dim.Render,
		"flags":                   h.flagUsages,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// flagUsages styles pflag's usage block line by line.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles one "  -f, --flag type   description" line. Lines that do
// not have that shape are returned unchanged.
func (h *HelpFormatter) flagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	spec, desc, ok := strings.Cut(body, flagColumnGap)
	if !ok || strings.TrimSpace(desc) == "" {
		return line
	}
	gap := desc[:len(desc)-len(strings.TrimLeft(desc, " "))]
	desc = desc[len(gap):]

	tokens := strings.Fields(spec)
	for i, token := range tokens {
		if name, comma := strings.CutSuffix(token, ","); strings.HasPrefix(name, "-") {
			tokens[i] = h.styles.Flag.Render(name)
			if comma {
				tokens[i] += ","
			}
			continue
		}
		tokens[i] = h.styles.Dim.Render(token)
	}

	return indent + strings.Join(tokens, " ") + flagColumnGap + gap + desc
}

// ApplyToCommand installs the styled templates on cmd. Subcommands inherit
// the help and usage functions.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
