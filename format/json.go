package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/classinfo"
)

type JSONEncoder struct {
	w   io.Writer
	rec *classinfo.Record
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(rec *classinfo.Record) error {
	e.rec = rec
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := e.buildClassData()
	if err != nil {
		return nil, err
	}
	text, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(text, '\n'), nil
}

type jsonClass struct {
	Name         string       `json:"name"`
	Package      string       `json:"package"`
	SuperClass   string       `json:"superClass,omitempty"`
	Constructors []jsonMember `json:"constructors,omitempty"`
	Methods      []jsonMember `json:"methods,omitempty"`
}

type jsonMember struct {
	Name        string     `json:"name"`
	Descriptor  string     `json:"descriptor"`
	ReturnType  jsonType   `json:"returnType"`
	Parameters  []jsonType `json:"parameters,omitempty"`
	Polymorphic bool       `json:"polymorphic,omitempty"`
}

type jsonType struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
}

func (e *JSONEncoder) buildClassData() (jsonClass, error) {
	r := e.rec
	data := jsonClass{
		Name:       classfile.InternalToSourceName(r.Name),
		Package:    classfile.InternalToSourceName(classfile.PackageName(r.Name)),
		SuperClass: classfile.InternalToSourceName(r.SuperName),
	}
	for _, m := range r.Members {
		jm, err := buildMember(m)
		if err != nil {
			return jsonClass{}, err
		}
		if m.Kind == classinfo.Constructor {
			data.Constructors = append(data.Constructors, jm)
		} else {
			data.Methods = append(data.Methods, jm)
		}
	}
	return data, nil
}

func buildMember(m classinfo.Member) (jsonMember, error) {
	md, err := signature(m)
	if err != nil {
		return jsonMember{}, err
	}
	jm := jsonMember{
		Name:        m.Name,
		Descriptor:  m.Descriptor(),
		ReturnType:  buildType(md.ReturnType),
		Polymorphic: m.Polymorphic,
	}
	for _, p := range md.Parameters {
		jm.Parameters = append(jm.Parameters, buildType(p))
	}
	return jm, nil
}

func buildType(t classfile.Type) jsonType {
	depth := t.Dimensions()
	elem := t
	for elem.IsArray() {
		elem = *elem.Elem
	}
	return jsonType{Name: elem.String(), ArrayDepth: depth}
}
