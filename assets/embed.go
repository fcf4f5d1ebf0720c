// Package assets embeds the files the server ships with: the default
// question list, SQL migrations, HTML templates and static CSS.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed questions.txt
var questionsFS embed.FS

//go:embed sql/*.sql
var migrationsFS embed.FS

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Lines splits text into trimmed, non-empty lines, skipping '#' comments.
func Lines(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out
}

// QuestionsList returns the embedded default question pool.
func QuestionsList() ([]string, error) {
	b, err := questionsFS.ReadFile("questions.txt")
	if err != nil {
		return nil, err
	}
	return Lines(string(b)), nil
}

// Migrations returns the SQL migration files rooted at "sql".
func Migrations() fs.FS { return migrationsFS }

// Templates returns the HTML templates rooted at "templates".
func Templates() fs.FS { return templatesFS }

// Static returns the static files with the "static" prefix stripped.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
