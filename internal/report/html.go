package report

import (
	"html/template"
	"strings"
	"time"

	"github.com/mrios/netrecon/internal/errors"
	"github.com/mrios/netrecon/internal/scanning"
)

// htmlTemplate renders the standalone HTML report. Styling follows the
// badge-per-profile scheme so reports from different scan depths are
// recognizable at a glance.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Network Scan Report - {{.Metadata.Target}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
        }
        body {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
            padding: 20px;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            border-radius: 15px;
            box-shadow: 0 20px 60px rgba(0,0,0,0.3);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(90deg, #2c3e50, #4a6491);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 { font-size: 2.5em; margin-bottom: 10px; }
        .badge {
            display: inline-block;
            padding: 8px 16px;
            border-radius: 20px;
            font-size: 0.9em;
            font-weight: bold;
            margin-top: 10px;
        }
        .badge-discovery { background: #17a2b8; }
        .badge-quick { background: #28a745; }
        .badge-comprehensive { background: #ffc107; color: #000; }
        .badge-vulnerability { background: #dc3545; }
        .badge-udp { background: #6f42c1; }
        .info-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            padding: 30px;
            background: #f8f9fa;
        }
        .info-card {
            background: white;
            padding: 20px;
            border-radius: 10px;
            box-shadow: 0 5px 15px rgba(0,0,0,0.1);
            border-left: 5px solid #667eea;
        }
        .results-section { padding: 30px; }
        .stats-box {
            background: #f8f9fa;
            border-radius: 10px;
            padding: 20px;
            margin-bottom: 30px;
        }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-top: 20px;
        }
        .stat-item {
            text-align: center;
            padding: 15px;
            background: white;
            border-radius: 8px;
            box-shadow: 0 3px 10px rgba(0,0,0,0.1);
        }
        .stat-value { font-size: 2em; font-weight: bold; color: #2c3e50; }
        .stat-label { color: #6c757d; margin-top: 5px; }
        .ports-table { width: 100%; border-collapse: collapse; margin-top: 20px; }
        .ports-table th {
            background: #2c3e50;
            color: white;
            padding: 12px;
            text-align: left;
        }
        .ports-table td { padding: 12px; border-bottom: 1px solid #e0e0e0; }
        .port-open { color: #28a745; font-weight: bold; }
        .vuln-list {
            background: #fff3cd;
            border: 1px solid #ffc107;
            border-radius: 8px;
            padding: 20px;
            margin-top: 20px;
        }
        .vuln-item { padding: 10px; border-bottom: 1px solid #ffc107; }
        .footer {
            background: #2c3e50;
            color: white;
            text-align: center;
            padding: 20px;
            margin-top: 30px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Network Security Scan Report</h1>
            <div class="badge badge-{{.Metadata.Profile}}">{{upper .Metadata.Profile}}</div>
        </div>

        <div class="info-grid">
            <div class="info-card">
                <h3>Target</h3>
                <p>{{.Metadata.Target}}</p>
            </div>
            <div class="info-card">
                <h3>Scan Date</h3>
                <p>{{fmtDate .Metadata.Timestamp}}</p>
            </div>
            <div class="info-card">
                <h3>Scan Status</h3>
                <p>{{if .Metadata.Success}}Success{{else}}Failed{{end}}</p>
            </div>
            <div class="info-card">
                <h3>Command</h3>
                <p><code>{{.Metadata.Command}}</code></p>
            </div>
        </div>

        <div class="results-section">
            <div class="stats-box">
                <h2>Scan Statistics</h2>
                <div class="stats-grid">
                    <div class="stat-item">
                        <div class="stat-value">{{.Statistics.HostsUp}}</div>
                        <div class="stat-label">Hosts Found</div>
                    </div>
                    <div class="stat-item">
                        <div class="stat-value">{{len .Statistics.OpenPorts}}</div>
                        <div class="stat-label">Open Ports</div>
                    </div>
                    <div class="stat-item">
                        <div class="stat-value">{{len .Statistics.Vulnerabilities}}</div>
                        <div class="stat-label">Vulnerabilities</div>
                    </div>
                    <div class="stat-item">
                        <div class="stat-value">{{statusLabel .Statistics.ScanStatus}}</div>
                        <div class="stat-label">Scan Status</div>
                    </div>
                </div>
            </div>

            <h2>Open Ports</h2>
            {{if .Statistics.OpenPorts}}
            <table class="ports-table">
                <thead><tr><th>Port</th><th>Protocol</th><th>State</th><th>Service</th></tr></thead>
                <tbody>
                {{- range .Statistics.OpenPorts}}
                    <tr>
                        <td>{{.Port}}</td>
                        <td>{{.Protocol}}</td>
                        <td class="port-open">{{.State}}</td>
                        <td>{{.Service}}{{if .Version}} ({{.Version}}){{end}}</td>
                    </tr>
                {{- end}}
                </tbody>
            </table>
            {{else}}
            <p>No open ports found.</p>
            {{end}}

            {{if .Statistics.Vulnerabilities}}
            <h2>Potential Vulnerabilities</h2>
            <div class="vuln-list">
                {{- range vulnPreview .Statistics.Vulnerabilities}}
                <div class="vuln-item">{{.}}</div>
                {{- end}}
                {{- with vulnOverflow .Statistics.Vulnerabilities}}
                <div class="vuln-item">... and {{.}} more</div>
                {{- end}}
            </div>
            {{end}}
        </div>

        <div class="footer">
            <p>Generated by netrecon</p>
            <p style="color: #95a5a6; font-size: 0.9em; margin-top: 5px;">
                Report ID: {{.ReportID}}
            </p>
        </div>
    </div>
</body>
</html>
`

// maxVulnItems caps the vulnerability list in the HTML report.
const maxVulnItems = 10

var htmlTmpl = template.Must(template.New("html").Funcs(template.FuncMap{
	"upper":   strings.ToUpper,
	"fmtDate": func(t time.Time) string { return t.Format("2006-01-02 15:04:05") },
	"statusLabel": func(status string) string {
		return strings.ReplaceAll(status, "_", " ")
	},
	"vulnPreview": func(vulns []string) []string {
		if len(vulns) > maxVulnItems {
			return vulns[:maxVulnItems]
		}
		return vulns
	},
	"vulnOverflow": func(vulns []string) int {
		if len(vulns) > maxVulnItems {
			return len(vulns) - maxVulnItems
		}
		return 0
	},
}).Parse(htmlTemplate))

// writeHTML renders the templated HTML report.
func (w *Writer) writeHTML(path string, result *scanning.Result) error {
	return w.WriteHTMLFromDocument(path, NewDocument(result))
}

// WriteHTMLFromDocument regenerates the HTML report from a previously
// written JSON document.
func (w *Writer) WriteHTMLFromDocument(path string, doc *Document) error {
	var b strings.Builder
	if err := htmlTmpl.Execute(&b, doc); err != nil {
		return errors.Wrap(errors.CodeReportWrite, "failed to render HTML report", err)
	}
	return w.writeFile(path, []byte(b.String()))
}
