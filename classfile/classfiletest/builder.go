// Package classfiletest assembles class files in memory so tests do not
// depend on a JDK or on checked-in binaries.
package classfiletest

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/dhamidi/jdkapi/classfile"
)

const defaultMajorVersion = 65

type pool struct {
	entries [][]byte
	slots   uint16
	index   map[string]uint16
}

func newPool() *pool {
	return &pool{slots: 1, index: make(map[string]uint16)}
}

func (p *pool) add(key string, entry []byte, wide bool) uint16 {
	if key != "" {
		if idx, ok := p.index[key]; ok {
			return idx
		}
	}
	idx := p.slots
	p.entries = append(p.entries, entry)
	p.slots++
	if wide {
		p.slots++
	}
	if key != "" {
		p.index[key] = idx
	}
	return idx
}

func (p *pool) utf8(s string) uint16 {
	var buf bytes.Buffer
	buf.WriteByte(byte(classfile.ConstantUtf8))
	writeU2(&buf, uint16(len(s)))
	buf.WriteString(s)
	return p.add("utf8:"+s, buf.Bytes(), false)
}

func (p *pool) named(tag classfile.ConstantTag, prefix, name string) uint16 {
	nameIdx := p.utf8(name)
	var buf bytes.Buffer
	buf.WriteByte(byte(tag))
	writeU2(&buf, nameIdx)
	return p.add(prefix+name, buf.Bytes(), false)
}

func (p *pool) class(name string) uint16 {
	return p.named(classfile.ConstantClass, "class:", name)
}

func (p *pool) module(name string) uint16 {
	return p.named(classfile.ConstantModule, "module:", name)
}

func (p *pool) pkg(name string) uint16 {
	return p.named(classfile.ConstantPackage, "package:", name)
}

func (p *pool) long(v int64) uint16 {
	var buf bytes.Buffer
	buf.WriteByte(byte(classfile.ConstantLong))
	writeU4(&buf, uint32(uint64(v)>>32))
	writeU4(&buf, uint32(uint64(v)))
	return p.add("", buf.Bytes(), true)
}

func (p *pool) double(v float64) uint16 {
	bits := math.Float64bits(v)
	var buf bytes.Buffer
	buf.WriteByte(byte(classfile.ConstantDouble))
	writeU4(&buf, uint32(bits>>32))
	writeU4(&buf, uint32(bits))
	return p.add("", buf.Bytes(), true)
}

func (p *pool) integer(v int32) uint16 {
	var buf bytes.Buffer
	buf.WriteByte(byte(classfile.ConstantInteger))
	writeU4(&buf, uint32(v))
	return p.add("", buf.Bytes(), false)
}

type member struct {
	flags classfile.AccessFlags
	name  string
	desc  string
	attrs []attribute
}

type attribute struct {
	name string
	data []byte
}

type innerClass struct {
	inner, outer, simple string
	flags                classfile.AccessFlags
}

// Builder accumulates the parts of a class file. The zero value is not
// usable; start with NewClass or NewModule.
type Builder struct {
	name       string
	super      string
	flags      classfile.AccessFlags
	major      uint16
	interfaces []string
	fields     []member
	methods    []member
	inner      []innerClass
	attrs      []attribute
	longs      []int64
	doubles    []float64
	ints       []int32
	module     *moduleSpec
}

// NewClass starts a public class extending java/lang/Object.
func NewClass(name string) *Builder {
	return &Builder{
		name:  name,
		super: "java/lang/Object",
		flags: classfile.AccPublic | classfile.AccSuper,
		major: defaultMajorVersion,
	}
}

// NewInterface starts a public interface.
func NewInterface(name string) *Builder {
	b := NewClass(name)
	b.flags = classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract
	return b
}

func (b *Builder) Flags(flags classfile.AccessFlags) *Builder {
	b.flags = flags
	return b
}

// Super sets the superclass; "" writes super_class = 0.
func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

func (b *Builder) MajorVersion(v uint16) *Builder {
	b.major = v
	return b
}

func (b *Builder) Implements(names ...string) *Builder {
	b.interfaces = append(b.interfaces, names...)
	return b
}

func (b *Builder) Field(flags classfile.AccessFlags, name, desc string) *Builder {
	b.fields = append(b.fields, member{flags: flags, name: name, desc: desc,
		attrs: []attribute{{name: "Synthetic"}}})
	return b
}

func (b *Builder) Method(flags classfile.AccessFlags, name, desc string) *Builder {
	// A fake Code attribute makes sure member attributes are skipped.
	b.methods = append(b.methods, member{flags: flags, name: name, desc: desc,
		attrs: []attribute{{name: "Code", data: []byte{0, 1, 0, 1, 0, 0, 0, 1, 0xB1, 0, 0, 0, 0}}}})
	return b
}

func (b *Builder) Constructor(flags classfile.AccessFlags, desc string) *Builder {
	return b.Method(flags, classfile.ConstructorName, desc)
}

// InnerClass adds an InnerClasses entry. Use the class's own name as inner
// to record the flags of a nested class.
func (b *Builder) InnerClass(inner, outer, simple string, flags classfile.AccessFlags) *Builder {
	b.inner = append(b.inner, innerClass{inner: inner, outer: outer, simple: simple, flags: flags})
	return b
}

// Attribute adds a raw class attribute.
func (b *Builder) Attribute(name string, data []byte) *Builder {
	b.attrs = append(b.attrs, attribute{name: name, data: data})
	return b
}

// Constants adds unused numeric constants, exercising the two-slot entries.
func (b *Builder) Constants(longs []int64, doubles []float64, ints []int32) *Builder {
	b.longs = append(b.longs, longs...)
	b.doubles = append(b.doubles, doubles...)
	b.ints = append(b.ints, ints...)
	return b
}

func (b *Builder) Bytes() []byte {
	p := newPool()

	for _, v := range b.longs {
		p.long(v)
	}
	for _, v := range b.doubles {
		p.double(v)
	}
	for _, v := range b.ints {
		p.integer(v)
	}

	thisIdx := p.class(b.name)
	var superIdx uint16
	if b.super != "" {
		superIdx = p.class(b.super)
	}
	ifaceIdx := make([]uint16, len(b.interfaces))
	for i, name := range b.interfaces {
		ifaceIdx[i] = p.class(name)
	}

	var body bytes.Buffer
	writeU2(&body, uint16(b.flags))
	writeU2(&body, thisIdx)
	writeU2(&body, superIdx)
	writeU2(&body, uint16(len(ifaceIdx)))
	for _, idx := range ifaceIdx {
		writeU2(&body, idx)
	}
	writeMembers(&body, p, b.fields)
	writeMembers(&body, p, b.methods)

	attrs := append([]attribute(nil), b.attrs...)
	if len(b.inner) > 0 {
		attrs = append(attrs, attribute{name: "InnerClasses", data: b.innerClassesData(p)})
	}
	if b.module != nil {
		attrs = append(attrs, b.module.attributes(p)...)
	}
	writeAttributes(&body, p, attrs)

	var out bytes.Buffer
	writeU4(&out, classfile.Magic)
	writeU2(&out, 0)
	writeU2(&out, b.major)
	writeU2(&out, p.slots)
	for _, e := range p.entries {
		out.Write(e)
	}
	out.Write(body.Bytes())
	return out.Bytes()
}

func (b *Builder) innerClassesData(p *pool) []byte {
	var buf bytes.Buffer
	writeU2(&buf, uint16(len(b.inner)))
	for _, ic := range b.inner {
		writeU2(&buf, p.class(ic.inner))
		var outer, simple uint16
		if ic.outer != "" {
			outer = p.class(ic.outer)
		}
		if ic.simple != "" {
			simple = p.utf8(ic.simple)
		}
		writeU2(&buf, outer)
		writeU2(&buf, simple)
		writeU2(&buf, uint16(ic.flags))
	}
	return buf.Bytes()
}

func writeMembers(buf *bytes.Buffer, p *pool, members []member) {
	writeU2(buf, uint16(len(members)))
	for _, m := range members {
		writeU2(buf, uint16(m.flags))
		writeU2(buf, p.utf8(m.name))
		writeU2(buf, p.utf8(m.desc))
		writeAttributes(buf, p, m.attrs)
	}
}

func writeAttributes(buf *bytes.Buffer, p *pool, attrs []attribute) {
	writeU2(buf, uint16(len(attrs)))
	for _, a := range attrs {
		writeU2(buf, p.utf8(a.name))
		writeU4(buf, uint32(len(a.data)))
		buf.Write(a.data)
	}
}

func writeU2(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU4(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
