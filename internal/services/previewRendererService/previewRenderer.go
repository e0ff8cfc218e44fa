package previewrendererservice

import (
	"bytes"
	"html/template"
	"strings"

	osvmodels "github.com/RobsonDevCode/osvdesk/internal/clients/models/osv"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/xerrors"
)

const previewTemplate = `<div class="osv-preview">
<h2 class="vuln-id">{{.ID}}</h2>
{{- with .Summary}}
<p class="vuln-summary">{{.}}</p>
{{- end}}
{{- if or .Published .Modified}}
<dl class="vuln-dates">
{{- with .Published}}<dt>Published</dt><dd>{{.}}</dd>{{end}}
{{- with .Modified}}<dt>Modified</dt><dd>{{.}}</dd>{{end}}
</dl>
{{- end}}
{{- with .Details}}
<section class="vuln-details">{{.}}</section>
{{- end}}
{{- with .Affected}}
<section class="vuln-affected">
<h3>Affected</h3>
<table>
<tr><th>Ecosystem</th><th>Package</th><th>Ranges</th></tr>
{{- range .}}
<tr><td>{{.Ecosystem}}</td><td>{{.Name}}</td><td>{{range .Ranges}}<div>{{.}}</div>{{end}}</td></tr>
{{- end}}
</table>
</section>
{{- end}}
{{- with .Severity}}
<section class="vuln-severity">
<h3>Severity</h3>
<ul>
{{- range .}}
<li>{{.Type}}: <code>{{.Score}}</code></li>
{{- end}}
</ul>
</section>
{{- end}}
{{- with .References}}
<section class="vuln-references">
<h3>References</h3>
<ul>
{{- range .}}
<li>{{.Type}}: <a href="{{.Url}}" rel="noopener noreferrer">{{.Url}}</a></li>
{{- end}}
</ul>
</section>
{{- end}}
{{- with .Credits}}
<section class="vuln-credits">
<h3>Credits</h3>
<ul>
{{- range .}}
<li>{{.Name}}{{with .Type}} ({{.}}){{end}}</li>
{{- end}}
</ul>
</section>
{{- end}}
</div>`

type PreviewRendererService interface {
	Render(record osvmodels.Vulnerability) (string, error)
}

type view struct {
	ID         string
	Summary    string
	Published  string
	Modified   string
	Details    template.HTML
	Affected   []affectedView
	Severity   []osvmodels.Severity
	References []osvmodels.Reference
	Credits    []osvmodels.Credit
}

type affectedView struct {
	Ecosystem string
	Name      string
	Ranges    []string
}

type PreviewRenderer struct {
	template *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewPreviewRenderer() *PreviewRenderer {
	return &PreviewRenderer{
		template: template.Must(template.New("preview").Parse(previewTemplate)),
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// Render produces the HTML fragment shown in the preview tab. Details are
// treated as Markdown and sanitized after conversion.
func (r *PreviewRenderer) Render(record osvmodels.Vulnerability) (string, error) {
	details, err := r.renderMarkdown(record.Details)
	if err != nil {
		return "", err
	}

	id := record.ID
	if id == "" {
		id = "Untitled advisory"
	}

	data := view{
		ID:         id,
		Summary:    record.Summary,
		Published:  record.Published,
		Modified:   record.Modified,
		Details:    details,
		Affected:   lo.Map(record.Affected, toAffectedView),
		Severity:   record.Severity,
		References: record.References,
		Credits:    record.Credits,
	}

	var buffer bytes.Buffer
	if err := r.template.Execute(&buffer, data); err != nil {
		return "", xerrors.Errorf("failed to render preview: %w", err)
	}
	return buffer.String(), nil
}

func (r *PreviewRenderer) renderMarkdown(source string) (template.HTML, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	var buffer bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buffer); err != nil {
		return "", xerrors.Errorf("failed to convert details: %w", err)
	}

	return template.HTML(r.policy.SanitizeBytes(buffer.Bytes())), nil
}

func toAffectedView(affected osvmodels.Affected, _ int) affectedView {
	v := affectedView{
		Ranges: lo.Map(affected.Ranges, func(r osvmodels.Range, _ int) string {
			events := lo.Map(r.Events, func(e osvmodels.Event, _ int) string {
				return e.Kind + " " + e.Value
			})
			label := r.Type
			if r.Repo != "" {
				label += " " + r.Repo
			}
			return label + ": " + strings.Join(events, ", ")
		}),
	}
	if affected.Package != nil {
		v.Ecosystem = affected.Package.Ecosystem
		v.Name = affected.Package.Name
		if v.Name == "" {
			v.Name = affected.Package.Purl
		}
	}
	return v
}
