// Package classinfo reads and writes the classinfo text format: one header
// line per class followed by its member lines.
//
//	java/lang/Object:null:2
//	--<init>()V
//	--hashCode()I
package classinfo

import (
	"strconv"
	"strings"
)

const (
	// NullSuper is written in place of the superclass of root types.
	NullSuper = "null"

	ConstructorName = "<init>"
	VoidDescriptor  = "V"

	memberPrefix      = "--"
	polymorphicSuffix = ":PS"
)

type Kind int

const (
	Method Kind = iota
	Constructor
)

func (k Kind) String() string {
	if k == Constructor {
		return "constructor"
	}
	return "method"
}

// Record is the extracted API of one class. SuperName is empty when the class
// has no superclass.
type Record struct {
	Name      string
	SuperName string
	Members   []Member
}

// Member is a constructor or method. Params and Return are JVM descriptors.
type Member struct {
	Kind   Kind
	Name   string
	Params []string
	Return string
	// Polymorphic marks signature-polymorphic methods such as
	// MethodHandle.invoke. Only the Reader sets it: extracted records never
	// carry the :PS suffix, so MethodHandle.invoke is written with its
	// declared ([Ljava/lang/Object;)Ljava/lang/Object; descriptor.
	Polymorphic bool
}

func NewConstructor(params ...string) Member {
	return Member{Kind: Constructor, Name: ConstructorName, Params: params, Return: VoidDescriptor}
}

func NewMethod(name, ret string, params ...string) Member {
	return Member{Kind: Method, Name: name, Params: params, Return: ret}
}

// Descriptor returns the method descriptor, (params)return.
func (m Member) Descriptor() string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range m.Params {
		b.WriteString(p)
	}
	b.WriteByte(')')
	b.WriteString(m.Return)
	return b.String()
}

func (m Member) String() string {
	s := memberPrefix + m.Name + m.Descriptor()
	if m.Polymorphic {
		s += polymorphicSuffix
	}
	return s
}

// Header returns the header line of r without the line terminator.
func (r *Record) Header() string {
	super := r.SuperName
	if super == "" {
		super = NullSuper
	}
	return r.Name + ":" + super + ":" + strconv.Itoa(len(r.Members))
}

// Constructors returns the constructor members in order.
func (r *Record) Constructors() []Member {
	return r.filter(Constructor)
}

// Methods returns the method members in order.
func (r *Record) Methods() []Member {
	return r.filter(Method)
}

func (r *Record) filter(kind Kind) []Member {
	var out []Member
	for _, m := range r.Members {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
