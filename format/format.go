// Package format renders classinfo records for people: as classinfo lines,
// as JSON or as Java stub declarations.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/classinfo"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(rec *classinfo.Record) error
}

// Names lists the formats accepted by New.
var Names = []string{"line", "json", "java"}

func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "java":
		return NewJavaEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected line, json, or java)", name)
}

// signature decodes the descriptor of m. Members read from a classinfo
// stream always decode; a hand-built member with a bad descriptor yields
// an error.
func signature(m classinfo.Member) (*classfile.MethodDescriptor, error) {
	md, err := classfile.ParseMethodDescriptor(m.Descriptor())
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", m.Name, err)
	}
	return md, nil
}

func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
