package classfile

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a Type. The zero Kind is void.
type Kind uint8

const (
	KindVoid Kind = iota
	KindByte
	KindChar
	KindDouble
	KindFloat
	KindInt
	KindLong
	KindShort
	KindBoolean
	KindObject
	KindArray
)

var baseTypes = []struct {
	kind Kind
	code byte
	name string
}{
	{KindByte, 'B', "byte"},
	{KindChar, 'C', "char"},
	{KindDouble, 'D', "double"},
	{KindFloat, 'F', "float"},
	{KindInt, 'I', "int"},
	{KindLong, 'J', "long"},
	{KindShort, 'S', "short"},
	{KindBoolean, 'Z', "boolean"},
	{KindVoid, 'V', "void"},
}

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	for _, bt := range baseTypes {
		if bt.kind == k {
			return bt.name
		}
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Type is a JVM type as it appears in a member signature. ClassName is set
// for objects, Elem for arrays.
type Type struct {
	Kind      Kind
	ClassName string
	Elem      *Type
}

// Primitive returns the base type for a Java keyword such as "int" or
// "void".
func Primitive(name string) (Type, bool) {
	for _, bt := range baseTypes {
		if bt.name == name {
			return Type{Kind: bt.kind}, true
		}
	}
	return Type{}, false
}

// Object returns a class or interface type. Dotted names are accepted.
func Object(name string) Type {
	return Type{Kind: KindObject, ClassName: SourceToInternalName(name)}
}

// ArrayOf wraps elem in dims array dimensions.
func ArrayOf(elem Type, dims int) Type {
	t := elem
	for i := 0; i < dims; i++ {
		e := t
		t = Type{Kind: KindArray, Elem: &e}
	}
	return t
}

func (t Type) IsArray() bool { return t.Kind == KindArray }

// Dimensions returns the number of array dimensions, 0 for non-arrays.
func (t Type) Dimensions() int {
	n := 0
	for t.Kind == KindArray && t.Elem != nil {
		n++
		t = *t.Elem
	}
	return n
}

// Descriptor encodes t in the JVM descriptor grammar: one of BCDFIJSZV for
// base types, L<internal name>; for objects and one [ per array dimension
// followed by the element encoding.
func (t Type) Descriptor() string {
	var sb strings.Builder
	t.writeDescriptor(&sb)
	return sb.String()
}

func (t Type) writeDescriptor(sb *strings.Builder) {
	switch t.Kind {
	case KindObject:
		sb.WriteByte('L')
		sb.WriteString(SourceToInternalName(t.ClassName))
		sb.WriteByte(';')
	case KindArray:
		sb.WriteByte('[')
		if t.Elem != nil {
			t.Elem.writeDescriptor(sb)
		}
	default:
		for _, bt := range baseTypes {
			if bt.kind == t.Kind {
				sb.WriteByte(bt.code)
				return
			}
		}
		sb.WriteByte('V')
	}
}

// String renders the type in Java source notation, e.g. java.lang.String[].
func (t Type) String() string {
	switch t.Kind {
	case KindObject:
		return InternalToSourceName(t.ClassName)
	case KindArray:
		if t.Elem == nil {
			return "[]"
		}
		return t.Elem.String() + "[]"
	default:
		return t.Kind.String()
	}
}

type MethodDescriptor struct {
	Parameters []Type
	ReturnType Type
}

// Descriptor re-encodes the method descriptor, e.g. (I[Ljava/lang/String;)V.
func (md *MethodDescriptor) Descriptor() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for _, p := range md.Parameters {
		p.writeDescriptor(&sb)
	}
	sb.WriteByte(')')
	md.ReturnType.writeDescriptor(&sb)
	return sb.String()
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") ")
	sb.WriteString(md.ReturnType.String())
	return sb.String()
}

func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, fmt.Errorf("invalid method descriptor %q: missing '('", desc)
	}

	md := &MethodDescriptor{}
	i := 1

	for i < len(desc) && desc[i] != ')' {
		ft, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		md.Parameters = append(md.Parameters, ft)
		i += consumed
	}

	if i >= len(desc) {
		return nil, fmt.Errorf("invalid method descriptor %q: missing ')'", desc)
	}
	i++

	switch {
	case i == len(desc)-1 && desc[i] == 'V':
		md.ReturnType = Type{Kind: KindVoid}
	case i < len(desc):
		rt, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		if i+consumed != len(desc) {
			return nil, fmt.Errorf("invalid method descriptor %q: trailing data", desc)
		}
		md.ReturnType = rt
	default:
		return nil, fmt.Errorf("invalid method descriptor %q: missing return type", desc)
	}

	return md, nil
}

// parseFieldType decodes one field type starting at start and reports the
// number of bytes consumed. Void is not a field type.
func parseFieldType(desc string, start int) (Type, int, error) {
	dims := 0
	i := start
	for i < len(desc) && desc[i] == '[' {
		dims++
		i++
	}

	if i >= len(desc) {
		return Type{}, 0, fmt.Errorf("invalid descriptor %q: unexpected end at %d", desc, i)
	}

	var elem Type
	switch c := desc[i]; c {
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return Type{}, 0, fmt.Errorf("invalid descriptor %q: unterminated class name at %d", desc, i)
		}
		elem = Type{Kind: KindObject, ClassName: desc[i+1 : i+semicolon]}
		i += semicolon + 1
	default:
		found := false
		for _, bt := range baseTypes {
			if bt.code == c && bt.kind != KindVoid {
				elem = Type{Kind: bt.kind}
				found = true
				break
			}
		}
		if !found {
			return Type{}, 0, fmt.Errorf("invalid descriptor %q: unexpected %q at %d", desc, c, i)
		}
		i++
	}

	return ArrayOf(elem, dims), i - start, nil
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
