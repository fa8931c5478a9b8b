package classfiletest

import (
	"bytes"

	"github.com/dhamidi/jdkapi/classfile"
)

type requires struct {
	module string
	flags  uint16
}

type export struct {
	pkg string
	to  []string
}

type moduleSpec struct {
	name       string
	requires   []requires
	exports    []export
	opens      []export
	packages   []string
	resolution *uint16
}

// NewModule starts a module-info class for the named module. Every module
// implicitly requires java.base unless it is java.base.
func NewModule(name string) *Builder {
	m := &moduleSpec{name: name}
	if name != "java.base" {
		m.requires = append(m.requires, requires{module: "java.base", flags: classfile.RequiresMandated})
	}
	return &Builder{
		name:   classfile.ModuleInfoName,
		flags:  classfile.AccModule,
		major:  defaultMajorVersion,
		module: m,
	}
}

func (b *Builder) Requires(module string, flags uint16) *Builder {
	b.module.requires = append(b.module.requires, requires{module: module, flags: flags})
	return b
}

// Exports adds unqualified exports. Packages are in internal form.
func (b *Builder) Exports(pkgs ...string) *Builder {
	for _, pkg := range pkgs {
		b.module.exports = append(b.module.exports, export{pkg: pkg})
	}
	return b
}

func (b *Builder) ExportsTo(pkg string, modules ...string) *Builder {
	b.module.exports = append(b.module.exports, export{pkg: pkg, to: modules})
	return b
}

func (b *Builder) Opens(pkg string, modules ...string) *Builder {
	b.module.opens = append(b.module.opens, export{pkg: pkg, to: modules})
	return b
}

// Packages sets the ModulePackages attribute.
func (b *Builder) Packages(pkgs ...string) *Builder {
	b.module.packages = append(b.module.packages, pkgs...)
	return b
}

// Resolution adds a ModuleResolution attribute with the given flags.
func (b *Builder) Resolution(flags uint16) *Builder {
	b.module.resolution = &flags
	return b
}

func (m *moduleSpec) attributes(p *pool) []attribute {
	var buf bytes.Buffer
	writeU2(&buf, p.module(m.name))
	writeU2(&buf, 0)
	writeU2(&buf, 0)

	writeU2(&buf, uint16(len(m.requires)))
	for _, r := range m.requires {
		writeU2(&buf, p.module(r.module))
		writeU2(&buf, r.flags)
		writeU2(&buf, 0)
	}
	writeDirectives(&buf, p, m.exports)
	writeDirectives(&buf, p, m.opens)
	// uses, provides
	writeU2(&buf, 0)
	writeU2(&buf, 0)

	attrs := []attribute{{name: "Module", data: buf.Bytes()}}

	if len(m.packages) > 0 {
		var pb bytes.Buffer
		writeU2(&pb, uint16(len(m.packages)))
		for _, pkg := range m.packages {
			writeU2(&pb, p.pkg(pkg))
		}
		attrs = append(attrs, attribute{name: "ModulePackages", data: pb.Bytes()})
	}
	if m.resolution != nil {
		var rb bytes.Buffer
		writeU2(&rb, *m.resolution)
		attrs = append(attrs, attribute{name: "ModuleResolution", data: rb.Bytes()})
	}
	return attrs
}

func writeDirectives(buf *bytes.Buffer, p *pool, directives []export) {
	writeU2(buf, uint16(len(directives)))
	for _, d := range directives {
		writeU2(buf, p.pkg(d.pkg))
		writeU2(buf, 0)
		writeU2(buf, uint16(len(d.to)))
		for _, to := range d.to {
			writeU2(buf, p.module(to))
		}
	}
}
