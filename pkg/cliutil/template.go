package cliutil

import (
	"github.com/spf13/cobra"
)

func init() {
	cobra.AddTemplateFunc("terminalWidth", TerminalWidth)
	cobra.AddTemplateFunc("wrap", Wrap)
	cobra.AddTemplateFunc("wrapIndent", WrapIndent)
	cobra.AddTemplateFunc("sum", func(args ...int) int {
		ret := 0
		for _, arg := range args {
			ret += arg
		}
		return ret
	})
}

// HelpTemplate is for (*cobra.Command).SetHelpTemplate.  It differs from
// cobra's stock template in that the long help, the subcommand table, and the
// flag tables are word-wrapped to the terminal width.
const HelpTemplate = `Usage: {{ .UseLine }}

{{- if .Short }}
{{ .Short }}
{{- end }}

{{- if .Long }}

{{ .Long | wrap terminalWidth | trimTrailingWhitespaces }}
{{- end }}

{{- if .Aliases }}

Aliases:
  {{ .NameAndAliases }}
{{- end }}

{{- if .HasExample }}

Examples:
{{ .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Available Commands:
{{- range .Commands}}
  {{- if (or .IsAvailableCommand (eq .Name "help")) }}
    {{- "\n" }}  {{ rpad .Name .NamePadding }}   {{ .Short | wrapIndent (sum .NamePadding 5) terminalWidth }}
  {{- end }}
{{- end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

Flags:
{{ terminalWidth | .LocalFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

Global Flags:
{{ terminalWidth | .InheritedFlags.FlagUsagesWrapped | trimTrailingWhitespaces }}
{{- end }}

{{- if .HasHelpSubCommands }}

Additional help topics:
{{- range .Commands }}
  {{- if .IsAdditionalHelpTopicCommand }}
    {{- "\n" }}  {{ rpad .CommandPath .CommandPathPadding }}   {{ .Short | wrapIndent (sum .NamePadding 5) terminalWidth }}
  {{- end }}
{{- end }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{ .CommandPath }} [command] --help" for more information about a command.
{{- end}}
`
