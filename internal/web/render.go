// Package web is the HTML presentation layer: template rendering and form
// handlers over the notes usecase.
package web

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/evgeniy-krivenko/notes-web/pkg/logger/slogx"
)

// Renderer parses base.html plus every page template under dir and renders
// them by relative path, e.g. "index.html" or "notes/edit.html".
type Renderer struct {
	dir       string
	funcMap   template.FuncMap
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	r := &Renderer{
		dir:     dir,
		funcMap: createFuncMap(),
	}

	templates, err := parseTemplates(dir, r.funcMap)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %v", err)
	}
	r.templates = templates

	return r, nil
}

func (r *Renderer) Render(w http.ResponseWriter, name string, code int, data any) error {
	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("execute template %q: %v", name, err)
	}

	return nil
}

// ErrorData is what error.html renders.
type ErrorData struct {
	PageData
	Code    int
	Status  string
	Message string
}

func (r *Renderer) RenderError(w http.ResponseWriter, code int, message string) {
	data := ErrorData{
		PageData: PageData{Title: http.StatusText(code)},
		Code:     code,
		Status:   http.StatusText(code),
		Message:  message,
	}

	if err := r.Render(w, "error.html", code, data); err != nil {
		http.Error(w, fmt.Sprintf("Error %d: %s", code, message), code)
	}
}

// Reload re-parses all templates and swaps them in atomically.
func (r *Renderer) Reload() error {
	templates, err := parseTemplates(r.dir, r.funcMap)
	if err != nil {
		return fmt.Errorf("reload templates: %v", err)
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	return nil
}

const watchDebounce = 200 * time.Millisecond

// Watch re-parses the templates whenever a file under the templates
// directory changes. It blocks until ctx is done. Intended for debug mode
// only; a parse failure is logged and the previous templates stay active.
func (r *Renderer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %v", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch templates dir: %v", err)
	}

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				debounce.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slogx.Warn(ctx, "template watcher error", slogx.Err(err))

		case <-debounce.C:
			if err := r.Reload(); err != nil {
				slogx.Warn(ctx, "failed to reload templates", slogx.Err(err))
				continue
			}
			slogx.Info(ctx, "templates reloaded")
		}
	}
}

func parseTemplates(dir string, funcMap template.FuncMap) (map[string]*template.Template, error) {
	baseContent, err := os.ReadFile(filepath.Join(dir, "base.html"))
	if err != nil {
		return nil, fmt.Errorf("read base template: %v", err)
	}

	templates := make(map[string]*template.Template)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") || d.Name() == "base.html" {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %v", path, err)
		}

		pageContent, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read template %s: %v", relPath, err)
		}

		tmpl, err := template.New("base").Funcs(funcMap).Parse(string(baseContent))
		if err != nil {
			return fmt.Errorf("parse base template for %s: %v", relPath, err)
		}

		tmpl, err = tmpl.Parse(string(pageContent))
		if err != nil {
			return fmt.Errorf("parse template %s: %v", relPath, err)
		}

		templates[filepath.ToSlash(relPath)] = tmpl

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates found in %s", dir)
	}

	return templates, nil
}

func createFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatTime": formatTime,
		"truncate":   truncate,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	if n <= 3 {
		return string(runes[:n])
	}

	return string(runes[:n-3]) + "..."
}
