package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/livemd/internal/ui/pretty"
)

// Command groups shown in the root help.
const (
	groupView   = "view"
	groupEdit   = "edit"
	groupVault  = "vault"
	groupConfig = "config"
)

func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupView, Title: "View Commands:"},
		{ID: groupEdit, Title: "Edit Commands:"},
		{ID: groupVault, Title: "Vault Commands:"},
		{ID: groupConfig, Title: "Configuration Commands:"},
	}
}

// HelpFormatter renders command help with the same palette livemd uses
// for notes: headings as headings, commands as links, flags as code.
type HelpFormatter struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	example lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))
	return &HelpFormatter{
		heading: styles.Headings[1],
		command: styles.Link,
		flag:    styles.Code,
		example: styles.Comment,
		dim:     styles.Dim,
	}
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ if or .Runnable .HasSubCommands }}{{ usage . }}{{ end }}`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}

{{- if gt (len .Aliases) 0 }}

{{ heading "Aliases:" }}
  {{ join .Aliases ", " }}
{{- end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}
{{- $cmds := .Commands }}
{{- range $group := .Groups }}

{{ heading $group.Title }}
{{- range $cmds }}{{ if and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")) }}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}
{{- if not .AllChildCommandsHaveGroup }}

{{ heading "Additional Commands:" }}
{{- range $cmds }}{{ if and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")) }}
  {{ command (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags.FlagUsages }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags.FlagUsages }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

// ApplyToCommand installs the styled help and usage output on cmd and,
// through inheritance, on all of its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := template.FuncMap{
		"heading":   h.heading.Render,
		"command":   h.command.Render,
		"example":   h.example.Render,
		"flags":     h.styleFlags,
		"join":      strings.Join,
		"rpad":      rpad,
		"trimRight": trimTrailingWhitespaces,
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	funcs["usage"] = func(command *cobra.Command) (string, error) {
		var sb strings.Builder
		if err := usage.Execute(&sb, command); err != nil {
			return "", fmt.Errorf("render usage: %w", err)
		}
		return sb.String(), nil
	}
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return usage.Execute(command.OutOrStderr(), command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// styleFlags colors the flag names of a pflag usage block and dims the
// value type, leaving the description plain.
func (h *HelpFormatter) styleFlags(usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		names, desc, ok := strings.Cut(trimmed, "  ")
		if !ok {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[i] = indent + h.styleFlagNames(names) + "   " + strings.TrimLeft(desc, " ")
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagNames(names string) string {
	tokens := strings.Fields(names)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}
	return strings.Join(tokens, " ")
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
