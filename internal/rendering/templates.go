// Package rendering renders a candidate profile as an HTML preview, a
// printable HTML document, a PDF and LaTeX source. Every renderer works
// from the same profile.Profile so their sections stay in step.
package rendering

import (
	"embed"
	htmltemplate "html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlOnce sync.Once
	htmlTmpl *htmltemplate.Template
	htmlErr  error

	texOnce sync.Once
	texTmpl *texttemplate.Template
	texErr  error
)

// htmlTemplates parses the preview and document templates once.
func htmlTemplates() (*htmltemplate.Template, error) {
	htmlOnce.Do(func() {
		htmlTmpl, htmlErr = htmltemplate.New("profile").Funcs(htmltemplate.FuncMap{
			"join": strings.Join,
		}).ParseFS(templateFS, "templates/*.html.tmpl")
		if htmlErr != nil {
			htmlErr = &TemplateError{Template: "html", Message: "failed to parse template", Cause: htmlErr}
		}
	})
	return htmlTmpl, htmlErr
}

// latexTemplate parses the LaTeX template once. It uses [[ ]] delimiters
// so LaTeX braces never collide with template actions.
func latexTemplate() (*texttemplate.Template, error) {
	texOnce.Do(func() {
		content, err := templateFS.ReadFile("templates/profile.tex.tmpl")
		if err != nil {
			texErr = &TemplateError{Template: "profile.tex", Message: "template file not found", Cause: err}
			return
		}
		texTmpl, err = texttemplate.New("profile.tex").Delims("[[", "]]").Funcs(texttemplate.FuncMap{
			"escape":     EscapeLaTeX,
			"escapeURL":  escapeLaTeXURL,
			"paragraphs": EscapeLaTeXParagraphs,
		}).Parse(string(content))
		if err != nil {
			texErr = &TemplateError{Template: "profile.tex", Message: "failed to parse template", Cause: err}
		}
	})
	return texTmpl, texErr
}

// escapeLaTeXURL escapes the characters \url{} cannot take verbatim.
func escapeLaTeXURL(u string) string {
	return strings.NewReplacer(`%`, `\%`, `#`, `\#`, `{`, ``, `}`, ``, `\`, ``).Replace(u)
}
