package classfile_test

import (
	"strings"
	"testing"

	"github.com/dhamidi/jdkapi/classfile"
)

func TestPrimitiveDescriptors(t *testing.T) {
	want := map[string]string{
		"byte":    "B",
		"char":    "C",
		"double":  "D",
		"float":   "F",
		"int":     "I",
		"long":    "J",
		"short":   "S",
		"boolean": "Z",
		"void":    "V",
	}

	seen := make(map[string]string)
	for name, code := range want {
		typ, ok := classfile.Primitive(name)
		if !ok {
			t.Fatalf("Primitive(%q) not found", name)
		}
		got := typ.Descriptor()
		if got != code {
			t.Errorf("Primitive(%q).Descriptor() = %q, want %q", name, got, code)
		}
		if other, dup := seen[got]; dup {
			t.Errorf("%q and %q both encode to %q", name, other, got)
		}
		seen[got] = name
	}

	if _, ok := classfile.Primitive("String"); ok {
		t.Error("Primitive(\"String\") should not be found")
	}
	if got := (classfile.Type{}).Descriptor(); got != "V" {
		t.Errorf("zero Type descriptor = %q, want V", got)
	}
}

func TestObjectDescriptor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a/b/C", "La/b/C;"},
		{"java.lang.String", "Ljava/lang/String;"},
		{"java/util/Map$Entry", "Ljava/util/Map$Entry;"},
	}
	for _, tt := range tests {
		if got := classfile.Object(tt.name).Descriptor(); got != tt.want {
			t.Errorf("Object(%q).Descriptor() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestArrayDescriptor(t *testing.T) {
	intType, _ := classfile.Primitive("int")

	tests := []struct {
		name string
		typ  classfile.Type
		want string
	}{
		{"int[]", classfile.ArrayOf(intType, 1), "[I"},
		{"String[][]", classfile.ArrayOf(classfile.Object("java.lang.String"), 2), "[[Ljava/lang/String;"},
		{"C[][][]", classfile.ArrayOf(classfile.Object("a/b/C"), 3), "[[[La/b/C;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.typ.Descriptor()
			if got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
			dims := tt.typ.Dimensions()
			if !strings.HasPrefix(got, strings.Repeat("[", dims)) || got[dims] == '[' {
				t.Errorf("Descriptor() = %q does not start with %d '['", got, dims)
			}
		})
	}
}

func TestParseParameterType(t *testing.T) {
	tests := []struct {
		desc string
		str  string
		dims int
	}{
		{"I", "int", 0},
		{"Ljava/lang/Object;", "java.lang.Object", 0},
		{"[J", "long[]", 1},
		{"[[Ljava/lang/String;", "java.lang.String[][]", 2},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md, err := classfile.ParseMethodDescriptor("(" + tt.desc + ")V")
			if err != nil {
				t.Fatalf("ParseMethodDescriptor(%q) error = %v", tt.desc, err)
			}
			if len(md.Parameters) != 1 {
				t.Fatalf("len(Parameters) = %d, want 1", len(md.Parameters))
			}
			typ := md.Parameters[0]
			if got := typ.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := typ.Dimensions(); got != tt.dims {
				t.Errorf("Dimensions() = %d, want %d", got, tt.dims)
			}
			if got := typ.Descriptor(); got != tt.desc {
				t.Errorf("Descriptor() = %q, want %q", got, tt.desc)
			}
		})
	}

	for _, bad := range []string{"V", "[", "Ljava/lang/String", "L;", "Q"} {
		if _, err := classfile.ParseMethodDescriptor("(" + bad + ")V"); err == nil {
			t.Errorf("ParseMethodDescriptor(%q) expected error", "("+bad+")V")
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc   string
		params int
		ret    string
		str    string
	}{
		{"()V", 0, "V", "() void"},
		{"(I)V", 1, "V", "(int) void"},
		{"(Ljava/lang/String;I)Z", 2, "Z", "(java.lang.String, int) boolean"},
		{"([BII)Ljava/lang/String;", 3, "Ljava/lang/String;", "(byte[], int, int) java.lang.String"},
		{"([[D)[Ljava/lang/Object;", 1, "[Ljava/lang/Object;", "(double[][]) java.lang.Object[]"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md, err := classfile.ParseMethodDescriptor(tt.desc)
			if err != nil {
				t.Fatalf("ParseMethodDescriptor(%q) error = %v", tt.desc, err)
			}
			if len(md.Parameters) != tt.params {
				t.Errorf("len(Parameters) = %d, want %d", len(md.Parameters), tt.params)
			}
			if got := md.ReturnType.Descriptor(); got != tt.ret {
				t.Errorf("ReturnType = %q, want %q", got, tt.ret)
			}
			if got := md.Descriptor(); got != tt.desc {
				t.Errorf("Descriptor() = %q, want %q", got, tt.desc)
			}
			if got := md.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}

	for _, bad := range []string{"", "V", "(I", "()", "(V)V", "()VV", "(Ljava/lang)V"} {
		if _, err := classfile.ParseMethodDescriptor(bad); err == nil {
			t.Errorf("ParseMethodDescriptor(%q) expected error", bad)
		}
	}
}
