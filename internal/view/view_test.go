package view

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeAgo(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", timeAgo(now))
	assert.Equal(t, "1 minute ago", timeAgo(now.Add(-90*time.Second)))
	assert.Equal(t, "3 hours ago", timeAgo(now.Add(-3*time.Hour)))
	assert.Equal(t, "2 days ago", timeAgo(now.Add(-49*time.Hour)))
}

func TestLoadRegistersEveryView(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, body string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("layouts/base.html", `{{define "base"}}<main>{{template "content" .}}</main>{{end}}`)
	for _, name := range Names {
		write("views/"+name, `{{template "base" .}}{{define "content"}}`+name+`{{end}}`)
	}

	r, err := Load(dir)
	require.NoError(t, err)
	for _, name := range Names {
		assert.NotNil(t, r.Instance(name, nil), name)
	}
}
