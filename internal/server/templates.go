// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

type indexPage struct {
	Message string
	Runs    []types.Run
}

type resultsPage struct {
	Query    string
	Result   *pipeline.Result
	Progress string
}

var pages = template.Must(template.New("").Parse(`
{{define "head"}}<!doctype html>
<html><head><meta charset="utf-8"><title>AI Research Assistant</title></head><body>
<h1>AI Research Assistant</h1>{{end}}

{{define "feedback"}}
<form method="post" action="/feedback">
<input type="hidden" name="page" value="{{.}}">
<p><label>Feedback<br><textarea name="feedback" rows="3" cols="60"></textarea></label></p>
<button type="submit">Submit feedback</button>
</form>
<p><a href="/feedback.csv">Download feedback CSV</a></p>
</body></html>{{end}}

{{define "index"}}{{template "head"}}
{{with .Message}}<p class="message">{{.}}</p>{{end}}
<form method="post" action="/search">
<p><label>Research topic <input type="text" name="query" size="50"></label></p>
<button type="submit">Search</button>
</form>
{{if .Runs}}<h2>Recent runs</h2>
<ul>{{range .Runs}}
<li>{{.Query}} ({{.CreatedAt.Format "2006-01-02 15:04"}})
{{if .ReportPath}}<a href="/runs/{{.ID}}/report.pdf">report</a>{{end}}
{{if .SurveyPath}}<a href="/runs/{{.ID}}/survey.pdf">survey</a>{{end}}
{{if .CSVPath}}<a href="/runs/{{.ID}}/survey.csv">csv</a>{{end}}</li>{{end}}
</ul>{{end}}
{{template "feedback" "Home"}}{{end}}

{{define "results"}}{{template "head"}}
<h2>Results for {{.Query}}</h2>
{{with .Result}}
<p>{{.Processed}} processed, {{.Failed}} failed.</p>
{{if .RunID}}<p>
{{if .ReportPath}}<a href="/runs/{{.RunID}}/report.pdf">Download IEEE report</a>{{end}}
{{if .SurveyPath}}<a href="/runs/{{.RunID}}/survey.pdf">Download survey PDF</a>{{end}}
{{if .CSVPath}}<a href="/runs/{{.RunID}}/survey.csv">Download survey CSV</a>{{end}}
</p>{{end}}
{{range .Rows}}<article>
<h3><a href="{{.Link}}">{{.Title}}</a></h3>
<p><strong>Section:</strong> {{.Section}}</p>
<p><strong>Summary:</strong> {{.Summary}}</p>
<p><strong>Advantages and disadvantages:</strong> {{.AdvantagesDisadvantages}}</p>
<p><strong>Quality review:</strong> {{.Review}}</p>
<p><strong>Recommendations:</strong> {{.Recommendations}}</p>
</article>{{end}}
{{if .FallbackText}}<h2>Report text</h2>
<p>The report could not be rendered as PDF.</p>
<pre>{{.FallbackText}}</pre>{{end}}
{{end}}
<details><summary>Progress</summary><pre>{{.Progress}}</pre></details>
<p><a href="/">New search</a></p>
{{template "feedback" "Results"}}{{end}}
`))

// render executes a page into a buffer so a template error never leaves a
// half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("rendering page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
