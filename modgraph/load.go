package modgraph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/image"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jdkapi.modgraph")

type Options struct {
	// AddModules are resolved in addition to the default roots.
	AddModules []string
	// LimitModules, when set, replaces the default root set.
	LimitModules []string
}

// Load reads the module descriptor of every module in src and resolves the
// boot graph: the root modules and everything they require, transitively.
// Service binding is not performed: modules reachable only through
// provides/uses are left out of the graph.
func Load(src image.Source, opts Options) (*Graph, error) {
	universe, err := readDescriptors(src)
	if err != nil {
		return nil, err
	}
	return Resolve(universe, opts)
}

func readDescriptors(src image.Source) (map[string]*Module, error) {
	names, err := src.Modules()
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	universe := make(map[string]*Module, len(names))
	for _, name := range names {
		data, err := src.ReadClass(name, classfile.ModuleInfoName)
		if errors.Is(err, image.ErrNotFound) {
			log.Warningf("module %s has no module-info.class, ignoring it", name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read descriptor of %s: %w", name, err)
		}
		cf, err := classfile.ParseBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parse descriptor of %s: %w", name, err)
		}
		m, ok := FromModuleInfo(cf)
		if !ok {
			return nil, fmt.Errorf("descriptor of %s has no Module attribute", name)
		}
		if m.Name != name {
			return nil, fmt.Errorf("descriptor in %s declares module %s", name, m.Name)
		}
		universe[name] = m
	}
	return universe, nil
}

// Resolve computes the boot graph over an already decoded set of modules.
func Resolve(universe map[string]*Module, opts Options) (*Graph, error) {
	var roots []string
	if len(opts.LimitModules) > 0 {
		roots = append(roots, opts.LimitModules...)
	} else {
		for name, m := range universe {
			if m.DefaultRoot {
				roots = append(roots, name)
			}
		}
		sort.Strings(roots)
	}
	roots = append(roots, opts.AddModules...)

	g := New()
	queue := make([]string, 0, len(roots))
	for _, name := range roots {
		if _, ok := universe[name]; !ok {
			return nil, fmt.Errorf("root module %s not found", name)
		}
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := g.Lookup(name); done {
			continue
		}
		m := universe[name]
		g.Add(m)
		for _, req := range m.Requires {
			if _, ok := universe[req]; !ok {
				return nil, fmt.Errorf("module %s required by %s not found", req, name)
			}
			queue = append(queue, req)
		}
	}

	log.Infof("resolved %d of %d modules into the boot graph", g.Len(), len(universe))
	return g, nil
}
