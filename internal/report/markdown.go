package report

import (
	"strings"
	"text/template"
	"time"

	"github.com/mrios/netrecon/internal/errors"
	"github.com/mrios/netrecon/internal/scanning"
)

const markdownTemplate = `# Network Security Scan Report

## Scan Details
- **Target**: {{.Metadata.Target}}
- **Profile**: {{.Metadata.Profile}}
- **Timestamp**: {{fmtTime .Metadata.Timestamp}}
- **Status**: {{if .Metadata.Success}}Success{{else}}Failed{{end}}
- **Command**: ` + "`{{.Metadata.Command}}`" + `

## Statistics
- **Hosts Found**: {{.Statistics.HostsUp}}
- **Open Ports**: {{len .Statistics.OpenPorts}}
- **Scan Status**: {{.Statistics.ScanStatus}}
{{- if .Statistics.OpenPorts}}

## Open Ports
| Port | Protocol | State | Service |
|------|----------|-------|---------|
{{- range .Statistics.OpenPorts}}
| {{.Port}} | {{.Protocol}} | {{.State}} | {{.Service}} |
{{- end}}
{{- end}}
{{- if .Statistics.Vulnerabilities}}

## Potential Vulnerabilities
{{- range .Statistics.Vulnerabilities}}
- {{.}}
{{- end}}
{{- end}}

## Raw Output
Full scan output is available in the corresponding .txt file.
`

var markdownTmpl = template.Must(template.New("markdown").Funcs(template.FuncMap{
	"fmtTime": func(t time.Time) string { return t.Format(time.RFC3339) },
}).Parse(markdownTemplate))

// writeMarkdown renders the human-readable summary report.
func (w *Writer) writeMarkdown(path string, result *scanning.Result) error {
	var b strings.Builder
	if err := markdownTmpl.Execute(&b, NewDocument(result)); err != nil {
		return errors.Wrap(errors.CodeReportWrite, "failed to render Markdown report", err)
	}
	return w.writeFile(path, []byte(b.String()))
}
