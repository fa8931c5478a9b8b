// Package introspect reads the class file of a runtime class and extracts
// its public API: superclass, constructors and declared methods.
package introspect

import (
	"errors"
	"fmt"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/classinfo"
	"github.com/dhamidi/jdkapi/image"
	"github.com/dhamidi/jdkapi/modgraph"
)

const objectClass = "java/lang/Object"

type Option func(*Introspector)

// WithModuleFilter controls whether classes of packages their module does
// not export are filtered out. On by default.
func WithModuleFilter(on bool) Option {
	return func(in *Introspector) { in.moduleFilter = on }
}

// WithLinkCheck controls whether a class referring to types outside the boot
// graph fails to load. On by default.
func WithLinkCheck(on bool) Option {
	return func(in *Introspector) { in.linkCheck = on }
}

type Introspector struct {
	graph        *modgraph.Graph
	src          image.Source
	moduleFilter bool
	linkCheck    bool
}

func New(g *modgraph.Graph, src image.Source, opts ...Option) *Introspector {
	in := &Introspector{
		graph:        g,
		src:          src,
		moduleFilter: true,
		linkCheck:    true,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Introspect loads the named class and returns its record. It returns a
// *ResolveError when the class cannot be loaded and a *FilteredError when it
// is not public API.
func (in *Introspector) Introspect(name string) (*classinfo.Record, error) {
	cf, owner, err := in.load(name)
	if err != nil {
		return nil, &ResolveError{Class: name, Err: err}
	}

	super := cf.SuperClassName()
	if name == objectClass {
		super = ""
	}
	if in.linkCheck {
		if err := in.checkSupertypes(super, cf.InterfaceNames()); err != nil {
			return nil, &ResolveError{Class: name, Err: err}
		}
	}

	if !cf.ClassAccessFlags().IsVisible() {
		return nil, &FilteredError{Class: name, Reason: "not public or protected"}
	}
	if in.moduleFilter && !owner.ExportsClass(name) {
		return nil, &FilteredError{Class: name, Reason: fmt.Sprintf("package not exported by %s", owner.Name)}
	}

	ctors, methods, err := in.members(cf)
	if err != nil {
		return nil, &ResolveError{Class: name, Err: err}
	}

	rec := &classinfo.Record{Name: name}
	// Interfaces have no superclass when viewed reflectively even though the
	// class file names java/lang/Object.
	if !cf.IsInterface() {
		rec.SuperName = super
	}
	rec.Members = append(ctors, methods...)
	return rec, nil
}

func (in *Introspector) load(name string) (*classfile.ClassFile, *modgraph.Module, error) {
	owner, ok := in.graph.OwnerOfClass(name)
	if !ok {
		return nil, nil, fmt.Errorf("no module in the boot graph contains it: %w", ErrNotFound)
	}
	data, err := in.src.ReadClass(owner.Name, name)
	if errors.Is(err, image.ErrNotFound) {
		return nil, nil, fmt.Errorf("no class file in %s: %w", owner.Name, ErrNotFound)
	}
	if err != nil {
		return nil, nil, err
	}
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return nil, nil, err
	}
	if got := cf.ClassName(); got != name {
		return nil, nil, fmt.Errorf("class file declares %s", got)
	}
	return cf, owner, nil
}

// members returns the visible constructors and methods of cf in class-file
// order. Every declared method takes part in the link check, as reflection
// resolves all of them.
func (in *Introspector) members(cf *classfile.ClassFile) (ctors, methods []classinfo.Member, err error) {
	cp := cf.ConstantPool
	for i := range cf.Methods {
		mi := &cf.Methods[i]
		if mi.IsStaticInitializer(cp) {
			continue
		}
		name := mi.Name(cp)
		desc, err := mi.ParsedDescriptor(cp)
		if err != nil {
			return nil, nil, fmt.Errorf("method %s: %w", name, err)
		}
		if in.linkCheck {
			if err := in.checkDescriptor(desc); err != nil {
				return nil, nil, fmt.Errorf("method %s%s: %w", name, desc.Descriptor(), err)
			}
		}
		if !mi.IsVisible() {
			continue
		}

		var params []string
		for _, p := range desc.Parameters {
			params = append(params, p.Descriptor())
		}
		if mi.IsConstructor(cp) {
			ctors = append(ctors, classinfo.NewConstructor(params...))
			continue
		}
		methods = append(methods, classinfo.NewMethod(name, desc.ReturnType.Descriptor(), params...))
	}
	return ctors, methods, nil
}

// checkSupertypes fails when the superclass or a direct superinterface lies
// outside the boot graph. Loading a class loads all of them.
func (in *Introspector) checkSupertypes(super string, ifaces []string) error {
	if super != "" {
		if err := in.checkLinkable(super); err != nil {
			return fmt.Errorf("superclass: %w", err)
		}
	}
	for _, iface := range ifaces {
		if err := in.checkLinkable(iface); err != nil {
			return fmt.Errorf("superinterface: %w", err)
		}
	}
	return nil
}

func (in *Introspector) checkDescriptor(desc *classfile.MethodDescriptor) error {
	for _, p := range desc.Parameters {
		if err := in.checkType(p); err != nil {
			return err
		}
	}
	return in.checkType(desc.ReturnType)
}

func (in *Introspector) checkType(t classfile.Type) error {
	for t.IsArray() {
		t = *t.Elem
	}
	if t.Kind != classfile.KindObject {
		return nil
	}
	return in.checkLinkable(t.ClassName)
}

func (in *Introspector) checkLinkable(className string) error {
	if _, ok := in.graph.OwnerOfClass(className); !ok {
		return fmt.Errorf("%s: %w", className, ErrLinkage)
	}
	return nil
}
