package export

import (
	"bytes"
	"html/template"

	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// The page is self contained so the headless browser needs no extra fetches.
const resumePage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 18mm; }
body { font-family: {{.FontFamily}}, "Helvetica Neue", Arial, sans-serif; font-size: {{.FontSize}}pt; color: #1f2430; margin: 0; }
h1 { font-size: 1.9em; margin: 0 0 2px; }
h2 { font-size: 1.1em; text-transform: uppercase; letter-spacing: 0.06em; border-bottom: 1px solid #c9ccd4; padding-bottom: 2px; margin: 18px 0 8px; }
h3 { font-size: 1em; margin: 10px 0 2px; }
p { margin: 2px 0; }
ul { margin: 4px 0 4px 18px; padding: 0; }
.contact { color: #555c6b; }
.dates { color: #555c6b; font-size: 0.92em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Contact}}<p class="contact">{{.}}</p>{{end}}
{{with .Doc.PersonalInfo.Summary}}<p>{{.}}</p>{{end}}
{{range .Sections}}
{{if and (eq . "experience") $.Doc.Experience}}
<h2>Experience</h2>
{{range $.Doc.Experience}}
<h3>{{.Position}}{{if .Company}} &mdash; {{.Company}}{{end}}</h3>
{{with dates .StartDate .EndDate .IsCurrent}}<p class="dates">{{.}}</p>{{end}}
{{with .Description}}<p>{{.}}</p>{{end}}
{{if .Achievements}}<ul>{{range .Achievements}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{end}}
{{end}}
{{if and (eq . "education") $.Doc.Education}}
<h2>Education</h2>
{{range $.Doc.Education}}
<h3>{{.Degree}}{{if .FieldOfStudy}}, {{.FieldOfStudy}}{{end}}{{if .Institution}} &mdash; {{.Institution}}{{end}}</h3>
{{with dates .StartDate .EndDate false}}<p class="dates">{{.}}</p>{{end}}
{{with .Description}}<p>{{.}}</p>{{end}}
{{end}}
{{end}}
{{if and (eq . "skills") $.Doc.Skills}}
<h2>Skills</h2>
<ul>{{range $.Doc.Skills}}<li>{{.Name}}{{with .Level}} ({{.}}){{end}}</li>{{end}}</ul>
{{end}}
{{if and (eq . "projects") $.Doc.Projects}}
<h2>Projects</h2>
{{range $.Doc.Projects}}
<h3>{{.Name}}</h3>
{{with .Description}}<p>{{.}}</p>{{end}}
{{with .Technologies}}<p class="dates">{{join .}}</p>{{end}}
{{with .URL}}<p class="dates">{{.}}</p>{{end}}
{{end}}
{{end}}
{{if and (eq . "certifications") $.Doc.Certifications}}
<h2>Certifications</h2>
{{range $.Doc.Certifications}}
<h3>{{.Name}}{{if .Issuer}} &mdash; {{.Issuer}}{{end}}</h3>
{{with .Date}}<p class="dates">{{.}}</p>{{end}}
{{end}}
{{end}}
{{if and (eq . "languages") $.Doc.Languages}}
<h2>Languages</h2>
<ul>{{range $.Doc.Languages}}<li>{{.Name}}{{with .Proficiency}} ({{.}}){{end}}</li>{{end}}</ul>
{{end}}
{{if eq . "custom"}}
{{range $.Doc.CustomSections}}
{{if or .Title .Content}}
<h2>{{.Title}}</h2>
{{with .Content}}<p>{{.}}</p>{{end}}
{{end}}
{{end}}
{{end}}
{{end}}
</body>
</html>
`

var resumeTemplate = template.Must(template.New("resume").Funcs(template.FuncMap{
	"dates": dateSpan,
	"join":  func(parts []string) string { return joinNonEmpty(", ", parts...) },
}).Parse(resumePage))

type htmlData struct {
	Title      string
	Contact    string
	FontFamily string
	FontSize   int
	Doc        types.ResumeDocument
	Sections   []string
}

// RenderHTML produces the standalone page all other formats print from.
func RenderHTML(doc types.ResumeDocument, title string) (string, error) {
	data := htmlData{
		Title:      title,
		Contact:    contactLine(doc.PersonalInfo),
		FontFamily: doc.DesignSettings.FontFamily,
		FontSize:   doc.DesignSettings.FontSize,
		Doc:        doc,
	}
	if data.FontFamily == "" {
		data.FontFamily = "Inter"
	}
	if data.FontSize <= 0 {
		data.FontSize = 11
	}
	for _, section := range doc.SectionOrder {
		data.Sections = append(data.Sections, string(section))
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render resume html")
	}
	return buf.String(), nil
}
