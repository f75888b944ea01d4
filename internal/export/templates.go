package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate *template.Template

func init() {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"formatDate": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
	}

	templateContent, err := templateFS.ReadFile("templates/report.html")
	if err != nil {
		// Fallback to built-in template if file not found
		reportTemplate = template.Must(template.New("report").Funcs(funcMap).Parse(fallbackTemplate))
		return
	}

	reportTemplate = template.Must(template.New("report").Funcs(funcMap).Parse(string(templateContent)))
}

// TemplateData holds data for report template rendering.
type TemplateData struct {
	Topic          string
	QuestionType   string
	Question       string
	Summary        string
	Recommendation string
	Thought        string
	DetailsHTML    template.HTML
	GeneratedAt    time.Time
}

// RenderReportHTML renders the report template with provided data.
func RenderReportHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderDetails converts the category-specific report fields into HTML
// sections, one per detail key, in stable alphabetical order.
func renderDetails(details map[string]any) template.HTML {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(`<section class="detail"><h2>`)
		b.WriteString(template.HTMLEscapeString(titleize(key)))
		b.WriteString(`</h2>`)
		b.WriteString(renderValue(details[key]))
		b.WriteString(`</section>`)
	}
	return template.HTML(b.String())
}

func titleize(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return "<p>" + template.HTMLEscapeString(v) + "</p>"
	case bool:
		return "<p>" + strconv.FormatBool(v) + "</p>"
	case int:
		return "<p>" + strconv.Itoa(v) + "</p>"
	case float64:
		return "<p>" + strconv.FormatFloat(v, 'f', -1, 64) + "</p>"
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return renderList(items)
	case []any:
		return renderList(v)
	case map[string]int:
		entries := make(map[string]any, len(v))
		for k, n := range v {
			entries[k] = n
		}
		return renderObject(entries)
	case map[string]any:
		return renderObject(v)
	default:
		return "<p>" + template.HTMLEscapeString(fmt.Sprintf("%v", v)) + "</p>"
	}
}

func renderList(items []any) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(renderValue(item))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func renderObject(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<dl>")
	for _, key := range keys {
		b.WriteString("<dt>")
		b.WriteString(template.HTMLEscapeString(titleize(key)))
		b.WriteString("</dt><dd>")
		b.WriteString(renderValue(obj[key]))
		b.WriteString("</dd>")
	}
	b.WriteString("</dl>")
	return b.String()
}

// fallbackTemplate is used if the embedded template fails to load.
const fallbackTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Topic}}</title>
</head>
<body>
  <h1>{{.Topic}}</h1>
  <p>{{.QuestionType}} | {{.GeneratedAt.Format "Jan 2, 2006"}}</p>
  <p>{{.Summary}}</p>
  <p>{{.Recommendation}}</p>
  {{.DetailsHTML}}
</body>
</html>`
