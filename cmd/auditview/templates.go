package main

// pageTemplates holds the inspector's HTML. The tool is an internal
// debugging surface, so the markup stays deliberately plain.
const pageTemplates = `
{{define "layout_head"}}
<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>auditview</title>
<style>
body { font-family: monospace; margin: 2rem; max-width: 70rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: left; vertical-align: top; }
th { background: #eee; }
.blocked { color: #a00; }
.note { background: #f7f7f7; padding: 0.4rem; }
</style>
</head>
<body>
<p><a href="/">auditview</a></p>
{{end}}

{{define "layout_foot"}}
</body>
</html>
{{end}}

{{define "index"}}
{{template "layout_head" .}}
<h1>auditview</h1>
<p>Read-only inspector. Useful paths:</p>
<ul>
<li><code>/accounts/{account}/baselines</code></li>
<li><code>/accounts/{account}/recommendations</code></li>
<li><code>/traces/{trace}</code></li>
</ul>
{{template "layout_foot" .}}
{{end}}

{{define "baselines"}}
{{template "layout_head" .}}
<h1>Baselines for {{.AccountID}}</h1>
<table>
<tr><th>Segment</th><th>Avg CPA</th><th>Avg ROAS</th><th>Avg CTR</th><th>Quality</th><th>Conversions</th><th>Days</th><th>Promo excluded</th></tr>
{{range .Baselines}}
<tr>
<td>{{.Segment.ConversionType}} / {{.Segment.Placement}} / {{.Segment.Objective}}</td>
<td>{{printf "%.2f" .AvgCPA}}</td>
<td>{{printf "%.2f" .AvgROAS}}</td>
<td>{{printf "%.4f" .AvgCTR}}</td>
<td>{{.Quality}}</td>
<td>{{.TotalConversions}}</td>
<td>{{.DaysIncluded}}</td>
<td>{{.PromoDaysExcluded}}</td>
</tr>
{{end}}
</table>
{{template "layout_foot" .}}
{{end}}

{{define "recommendations"}}
{{template "layout_head" .}}
<h1>Recommendations for {{.AccountID}}</h1>
<table>
<tr><th>ID</th><th>Type</th><th>Status</th><th>Confidence</th><th>Note</th></tr>
{{range .Recommendations}}
<tr>
<td>{{.ID}}</td>
<td>{{.Type}}</td>
<td>{{.Status}}</td>
<td>{{.Confidence}}</td>
<td class="note">{{.Note}}</td>
</tr>
{{end}}
</table>
{{template "layout_foot" .}}
{{end}}

{{define "trace"}}
{{template "layout_head" .}}
<h1>Trail {{.TraceID}}</h1>
<table>
<tr><th>Step</th><th>Gate</th><th>Creative</th><th>Blocked</th><th>Reason</th><th>At</th></tr>
{{range .Entries}}
<tr>
<td>{{.Step}}</td>
<td>{{.GateType}}</td>
<td>{{.CreativeID}}</td>
<td{{if .Blocked}} class="blocked"{{end}}>{{.Blocked}}</td>
<td>{{.Reason}}</td>
<td>{{.At}}</td>
</tr>
{{end}}
</table>
{{template "layout_foot" .}}
{{end}}
`
