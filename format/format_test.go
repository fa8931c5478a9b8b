package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/jdkapi/classinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *classinfo.Record {
	invoke := classinfo.NewMethod("invoke", "Ljava/lang/Object;", "[Ljava/lang/Object;")
	invoke.Polymorphic = true
	return &classinfo.Record{
		Name:      "java/util/Map$Entry",
		SuperName: "java/lang/Object",
		Members: []classinfo.Member{
			classinfo.NewConstructor("I", "[[J"),
			classinfo.NewMethod("getKey", "Ljava/lang/Object;"),
			invoke,
		},
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(sample()))
	assert.Equal(t, `java/util/Map$Entry:java/lang/Object:3
--<init>(I[[J)V
--getKey()Ljava/lang/Object;
--invoke([Ljava/lang/Object;)Ljava/lang/Object;:PS
`, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(sample()))

	var got jsonClass
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "java.util.Map$Entry", got.Name)
	assert.Equal(t, "java.util", got.Package)
	assert.Equal(t, "java.lang.Object", got.SuperClass)

	require.Len(t, got.Constructors, 1)
	assert.Equal(t, []jsonType{{Name: "int"}, {Name: "long", ArrayDepth: 2}}, got.Constructors[0].Parameters)
	assert.Equal(t, jsonType{Name: "void"}, got.Constructors[0].ReturnType)

	require.Len(t, got.Methods, 2)
	assert.Equal(t, "getKey", got.Methods[0].Name)
	assert.Equal(t, "()Ljava/lang/Object;", got.Methods[0].Descriptor)
	assert.True(t, got.Methods[1].Polymorphic)
}

func TestJavaEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJavaEncoder(&buf).Encode(sample()))
	assert.Equal(t, `package java.util;

class Entry extends java.lang.Object {
    Entry(int arg0, long[][] arg1) {}
    java.lang.Object getKey() {}
    java.lang.Object invoke(java.lang.Object[] arg0) {}
}
`, buf.String())

	t.Run("root class", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJavaEncoder(&buf).Encode(&classinfo.Record{Name: "Unnamed"}))
		assert.Equal(t, "class Unnamed {\n}\n", buf.String())
	})
}

func TestBadDescriptor(t *testing.T) {
	rec := &classinfo.Record{Name: "a/B", Members: []classinfo.Member{{Name: "f", Return: "Q"}}}
	assert.Error(t, NewJSONEncoder(&bytes.Buffer{}).Encode(rec))
	assert.Error(t, NewJavaEncoder(&bytes.Buffer{}).Encode(rec))
}
