package lang

import (
	"path/filepath"
	"strings"
	"sync"
)

// Registry maps file extensions and language names onto registered
// Language implementations, mirroring the teacher's LanguageRegistry but
// built from a static, compile-time table instead of runtime fallback
// detection: every language in this tree ships with a working grammar
// binding, so there is no regex-fallback path to register.
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]Language
	byExt     map[string]Language
}

// NewRegistry builds an empty registry. Call Register for each supported
// language, or use DefaultRegistry for the full eight-language set.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Language),
		byExt:  make(map[string]Language),
	}
}

// Register adds a language, indexing it by name and by every extension it
// claims. A later registration overwrites an earlier one for a shared
// extension (no two languages in this registry collide in practice).
func (r *Registry) Register(l Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[l.Name()] = l
	for _, ext := range l.Extensions() {
		r.byExt[strings.ToLower(ext)] = l
	}
}

// Get returns the language registered under name.
func (r *Registry) Get(name string) (Language, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byName[name]
	return l, ok
}

// ForFile returns the language that should parse path, based on its
// extension.
func (r *Registry) ForFile(path string) (Language, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byExt[ext]
	return l, ok
}

// Names lists every registered language name, sorted by registration order
// is not guaranteed; callers that need determinism should sort the result.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	return names
}

// Extensions lists every file extension a registered language claims, for
// callers that need to restrict a broader file-discovery pass (internal/walker)
// down to only the files this registry can actually parse.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}
