package format

import (
	"io"
	"strings"

	"github.com/dhamidi/jdkapi/classinfo"
)

// LineEncoder writes records in the classinfo format itself.
type LineEncoder struct {
	w   io.Writer
	rec *classinfo.Record
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(rec *classinfo.Record) error {
	e.rec = rec
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(e.rec.Header())
	sb.WriteByte('\n')
	for _, m := range e.rec.Members {
		sb.WriteString(m.String())
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}
