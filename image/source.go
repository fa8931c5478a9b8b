// Package image gives access to the classes of a JDK runtime image, either
// through the jimage tool or through a tree it has extracted.
package image

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("class not found")

// Source provides class bytes by module and internal class name.
type Source interface {
	// Modules returns the names of all modules in the image, sorted.
	Modules() ([]string, error)
	// ReadClass returns the bytes of <name>.class in module. It returns an
	// error wrapping ErrNotFound when the module has no such class.
	ReadClass(module, name string) ([]byte, error)
}

// Dir is the layout written by `jimage extract --dir`:
// <root>/<module>/<internal name>.class.
type Dir struct {
	Root string
}

func (d Dir) Modules() ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}
	var modules []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(d.Root, e.Name(), "module-info.class")); err != nil {
			continue
		}
		modules = append(modules, e.Name())
	}
	sort.Strings(modules)
	return modules, nil
}

func (d Dir) ReadClass(module, name string) ([]byte, error) {
	if !validName(module) || !validName(name) {
		return nil, fmt.Errorf("%s/%s: %w", module, name, ErrNotFound)
	}
	path := filepath.Join(d.Root, module, filepath.FromSlash(name)+".class")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s/%s: %w", module, name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// validName rejects names that could escape the image root.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

// Memory is an in-memory Source keyed by module and class name.
type Memory map[string]map[string][]byte

// Add stores data as module/name, creating the module if needed.
func (m Memory) Add(module, name string, data []byte) {
	classes, ok := m[module]
	if !ok {
		classes = make(map[string][]byte)
		m[module] = classes
	}
	classes[name] = data
}

func (m Memory) Modules() ([]string, error) {
	modules := make([]string, 0, len(m))
	for name := range m {
		modules = append(modules, name)
	}
	sort.Strings(modules)
	return modules, nil
}

func (m Memory) ReadClass(module, name string) ([]byte, error) {
	data, ok := m[module][name]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", module, name, ErrNotFound)
	}
	return data, nil
}
