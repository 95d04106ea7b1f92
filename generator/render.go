package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/google/uuid"
	"github.com/simonhull/firebird-suite/plume/inflect"
)

// defaultRenderer renders destinations and filesystem-backed templates for
// every instance.
var defaultRenderer = NewRenderer()

// reservedNames are text/template builtins a binding may not shadow.
var reservedNames = []string{
	"and", "or", "not", "len", "index", "slice", "print", "printf", "println",
	"html", "js", "urlquery", "call", "eq", "ne", "lt", "le", "gt", "ge",
	"block", "break", "continue", "define", "else", "end", "if", "nil",
	"range", "template", "with",
}

// Renderer handles template parsing and rendering with caching.
//
// Besides `.name` field access, every binding whose name is an identifier is
// exposed as a zero-argument function, so `{{name}}.txt` renders the same
// as `{{.name}}.txt`. Bindings never shadow helpers or builtins.
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name is used for caching and error messages.
func (r *Renderer) RenderString(name, templateStr string, data Bindings) ([]byte, error) {
	return r.render(name, "string:"+name, data, func() (string, error) {
		return templateStr, nil
	})
}

// RenderFS renders a template read from fsys.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data Bindings) ([]byte, error) {
	return r.render(path, fmt.Sprintf("fs:%T:%v:%s", fsys, fsys, path), data, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template '%s': %w", path, err)
		}
		return string(b), nil
	})
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) render(name, key string, data Bindings, load func() (string, error)) ([]byte, error) {
	names := r.bindingFuncNames(data)
	cacheKey := key + "|" + strings.Join(names, ",")

	r.mu.RLock()
	tmpl, ok := r.cache[cacheKey]
	r.mu.RUnlock()

	if !ok {
		text, err := load()
		if err != nil {
			return nil, err
		}

		// Binding functions must exist at parse time; their values are
		// swapped in per execution below.
		funcs := template.FuncMap{}
		for helper, fn := range r.funcMap {
			funcs[helper] = fn
		}
		for _, binding := range names {
			funcs[binding] = func() any { return nil }
		}

		tmpl, err = template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
		}

		r.mu.Lock()
		r.cache[cacheKey] = tmpl
		r.mu.Unlock()
	}

	exec, err := tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone template '%s': %w", name, err)
	}
	values := template.FuncMap{}
	for _, binding := range names {
		value := data[binding]
		values[binding] = func() any { return value }
	}
	exec.Funcs(values)

	var buf bytes.Buffer
	if err := exec.Execute(&buf, map[string]any(data)); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

// bindingFuncNames returns, sorted, the binding names exposed as functions.
func (r *Renderer) bindingFuncNames(data Bindings) []string {
	names := make([]string, 0, len(data))
	for name := range data {
		if !IsIdentifier(name) || slices.Contains(reservedNames, name) {
			continue
		}
		if _, helper := r.funcMap[name]; helper {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase": inflect.Pascal, // user_name → UserName
		"camelCase":  inflect.Camel,  // user_name → userName
		"snakeCase":  inflect.Snake,  // UserName → user_name
		"kebabCase":  inflect.Kebab,  // UserName → user-name

		// String manipulation
		"plural":    inflect.Pluralize, // user → users
		"quote":     Quote,             // test → "test"
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"title":     inflect.Title,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"split":     strings.Split,
		"contains":  strings.Contains,
		"hasPrefix": strings.HasPrefix,
		"hasSuffix": strings.HasSuffix,
		"replace":   strings.ReplaceAll,
		"str":       Str,

		// Utilities
		"dict":    Dict,    // Create map for passing multiple values
		"default": Default, // Provide default value if nil/empty
		"uuid":    uuid.NewString,
	}
}

// Quote wraps a value's string form in double quotes
func Quote(v any) string {
	return fmt.Sprintf("%q", Str(v))
}

// Str formats any binding value as a string; nil becomes "".
func Str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns the default value if the given value is nil or empty
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
