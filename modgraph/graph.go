// Package modgraph models the boot module graph: the modules a JVM would
// resolve at startup and the packages each of them exports.
package modgraph

import (
	"sort"

	"github.com/dhamidi/jdkapi/classfile"
)

// Module is one module of the graph. Package names are in internal form
// (java/lang).
type Module struct {
	Name string
	// Exports holds the packages exported to every module. Qualified
	// exports are not recorded: they never make a package public API.
	Exports map[string]bool
	// Packages holds every package of the module, exported or not.
	Packages map[string]bool
	// Requires lists the modules read by this one, excluding static
	// requires which are not resolved at run time.
	Requires []string
	// DefaultRoot reports whether the module belongs to the default root
	// set: it exports at least one package and is not marked
	// DO_NOT_RESOLVE_BY_DEFAULT.
	DefaultRoot bool
}

func NewModule(name string) *Module {
	return &Module{
		Name:     name,
		Exports:  make(map[string]bool),
		Packages: make(map[string]bool),
	}
}

// Export records pkg as an unqualified export. An exported package always
// belongs to the module.
func (m *Module) Export(pkgs ...string) *Module {
	for _, pkg := range pkgs {
		m.Exports[pkg] = true
		m.Packages[pkg] = true
	}
	return m
}

// Contain records pkg as a (possibly concealed) package of the module.
func (m *Module) Contain(pkgs ...string) *Module {
	for _, pkg := range pkgs {
		m.Packages[pkg] = true
	}
	return m
}

func (m *Module) IsExported(pkg string) bool {
	return m.Exports[pkg]
}

// ExportsClass reports whether className lives in an exported package.
func (m *Module) ExportsClass(className string) bool {
	pkg := classfile.PackageName(className)
	return pkg != "" && m.Exports[pkg]
}

// FromModuleInfo builds a Module from a parsed module-info class.
func FromModuleInfo(cf *classfile.ClassFile) (*Module, bool) {
	attr := cf.Module()
	if attr == nil {
		return nil, false
	}
	cp := cf.ConstantPool
	m := NewModule(cp.GetModuleName(attr.ModuleNameIndex))

	for _, req := range attr.Requires {
		if req.RequiresFlags&classfile.RequiresStaticPhase != 0 {
			continue
		}
		if name := cp.GetModuleName(req.RequiresIndex); name != "" {
			m.Requires = append(m.Requires, name)
		}
	}
	for _, exp := range attr.Exports {
		pkg := cp.GetPackageName(exp.ExportsIndex)
		if pkg == "" {
			continue
		}
		m.Contain(pkg)
		if !exp.IsQualified() {
			m.Export(pkg)
		}
	}
	for _, opens := range attr.Opens {
		if pkg := cp.GetPackageName(opens.OpensIndex); pkg != "" {
			m.Contain(pkg)
		}
	}
	m.Contain(cf.ModulePackages()...)

	m.DefaultRoot = len(m.Exports) > 0 && !cf.ModuleResolution().DoNotResolveByDefault()
	return m, m.Name != ""
}

// Graph maps module names to modules and packages to their owning module.
// A Graph is built once per run and then only read. It holds the modules
// reached through requires edges only; see Load.
type Graph struct {
	modules map[string]*Module
	owners  map[string]*Module
}

func New(modules ...*Module) *Graph {
	g := &Graph{
		modules: make(map[string]*Module),
		owners:  make(map[string]*Module),
	}
	for _, m := range modules {
		g.Add(m)
	}
	return g
}

// Add inserts m. A second module of the same name is ignored, and a package
// claimed by two modules keeps its first owner.
func (g *Graph) Add(m *Module) {
	if _, dup := g.modules[m.Name]; dup {
		return
	}
	g.modules[m.Name] = m
	for pkg := range m.Packages {
		if _, taken := g.owners[pkg]; !taken {
			g.owners[pkg] = m
		}
	}
}

func (g *Graph) Lookup(name string) (*Module, bool) {
	m, ok := g.modules[name]
	return m, ok
}

// Owner returns the module containing pkg.
func (g *Graph) Owner(pkg string) (*Module, bool) {
	m, ok := g.owners[pkg]
	return m, ok
}

// OwnerOfClass returns the module containing the package of className.
func (g *Graph) OwnerOfClass(className string) (*Module, bool) {
	return g.Owner(classfile.PackageName(className))
}

// Names returns the module names in sorted order.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.modules))
	for name := range g.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (g *Graph) Len() int {
	return len(g.modules)
}
