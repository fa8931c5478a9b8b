package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/classinfo"
)

// JavaEncoder renders a record as a Java declaration with empty bodies, the
// shape a stub generator would emit. Modifiers are not part of a record, so
// none are written.
type JavaEncoder struct {
	w   io.Writer
	rec *classinfo.Record
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(rec *classinfo.Record) error {
	e.rec = rec
	return encode(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.rec

	if pkg := classfile.PackageName(r.Name); pkg != "" {
		fmt.Fprintf(&sb, "package %s;\n\n", classfile.InternalToSourceName(pkg))
	}

	sb.WriteString("class ")
	sb.WriteString(simpleName(r.Name))
	if r.SuperName != "" {
		sb.WriteString(" extends ")
		sb.WriteString(classfile.InternalToSourceName(r.SuperName))
	}
	sb.WriteString(" {\n")

	for _, m := range r.Members {
		md, err := signature(m)
		if err != nil {
			return nil, err
		}
		sb.WriteString("    ")
		if m.Kind == classinfo.Constructor {
			sb.WriteString(simpleName(r.Name))
		} else {
			sb.WriteString(md.ReturnType.String())
			sb.WriteByte(' ')
			sb.WriteString(m.Name)
		}
		sb.WriteByte('(')
		for i, p := range md.Parameters {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s arg%d", p.String(), i)
		}
		sb.WriteString(") {}\n")
	}

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

// simpleName drops the package, and for nested classes the enclosing class
// names.
func simpleName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
