// Package filter decides which directory children a listing includes.
package filter

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// FileFilter is a predicate over directory children.
type FileFilter interface {
	Accept(info filesystem.FileInfo) bool
}

// Func adapts a function to FileFilter.
type Func func(info filesystem.FileInfo) bool

func (f Func) Accept(info filesystem.FileInfo) bool { return f(info) }

// ExtensionFilter accepts every directory and the files whose extension is
// in the whitelist. Matching is case-insensitive.
type ExtensionFilter struct {
	exts map[string]struct{}
}

// NewExtensionFilter builds a filter for the given extensions. A missing
// leading dot is added.
func NewExtensionFilter(exts ...string) *ExtensionFilter {
	f := &ExtensionFilter{exts: make(map[string]struct{}, len(exts))}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.exts[e] = struct{}{}
	}
	return f
}

func (f *ExtensionFilter) Accept(info filesystem.FileInfo) bool {
	if info.IsDir() {
		return true
	}
	_, ok := f.exts[strings.ToLower(filepath.Ext(info.Name()))]
	return ok
}

// Extensions returns the whitelisted extensions, sorted.
func (f *ExtensionFilter) Extensions() []string {
	out := make([]string, 0, len(f.exts))
	for e := range f.exts {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// ScriptFilter accepts directories and script files.
func ScriptFilter() *ExtensionFilter {
	return NewExtensionFilter(scriptfs.ScriptExtensions...)
}

// AcceptAll accepts every child. A nil FileFilter behaves the same way.
var AcceptAll FileFilter = Func(func(filesystem.FileInfo) bool { return true })

// DirectoriesOnly accepts directories, for directory pickers.
var DirectoriesOnly FileFilter = Func(func(info filesystem.FileInfo) bool { return info.IsDir() })
