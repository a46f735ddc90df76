package view

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"inkwell/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// Template names handed to gin's HTML renderer.
const (
	Index     = "index.html"
	Register  = "register.html"
	Login     = "login.html"
	Dashboard = "dashboard.html"
	NewPost   = "new_post.html"
	EditPost  = "edit_post.html"
	Detail    = "post_detail.html"
	Error     = "error.html"
)

// Names lists every view Load registers.
var Names = []string{Index, Register, Login, Dashboard, NewPost, EditPost, Detail, Error}

// FuncMap is shared by every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"markdown": utils.RenderMarkdown,
		"timeAgo":  timeAgo,
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}
}

// Load builds the renderer from templatesDir: every view is parsed together
// with layouts/*.html and includes/*.html.
func Load(templatesDir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		return nil, err
	}
	includes, err := filepath.Glob(filepath.Join(templatesDir, "includes", "*.html"))
	if err != nil {
		return nil, err
	}

	funcs := FuncMap()
	for _, name := range Names {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, filepath.Join(templatesDir, "views", name))
		r.AddFromFilesFuncs(name, funcs, files...)
	}
	return r, nil
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 2592000:
		return plural(seconds/86400, "day")
	case seconds < 31536000:
		return plural(seconds/2592000, "month")
	}
	return plural(seconds/31536000, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
