package classinfo

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jdkapi/classfile"
)

// FormatError reports a malformed line of a classinfo stream.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Reader parses a classinfo stream record by record.
type Reader struct {
	s    *bufio.Scanner
	line int
	// peeked holds a line read past the end of the previous record.
	peeked *string
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{s: s}
}

func (r *Reader) next() (string, bool, error) {
	if r.peeked != nil {
		line := *r.peeked
		r.peeked = nil
		return line, true, nil
	}
	if !r.s.Scan() {
		return "", false, r.s.Err()
	}
	r.line++
	return r.s.Text(), true, nil
}

func (r *Reader) errorf(format string, args ...any) error {
	return &FormatError{Line: r.line, Msg: fmt.Sprintf(format, args...)}
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (*Record, error) {
	line, ok, err := r.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	rec, count, err := r.parseHeader(line)
	if err != nil {
		return nil, err
	}

	for i := 0; i < count; i++ {
		line, ok, err := r.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, r.errorf("%s: expected %d members, got %d", rec.Name, count, i)
		}
		if !strings.HasPrefix(line, memberPrefix) {
			return nil, r.errorf("%s: expected %d members, got %d", rec.Name, count, i)
		}
		m, err := r.parseMember(line)
		if err != nil {
			return nil, err
		}
		rec.Members = append(rec.Members, m)
	}

	// A member line right after the last expected one means the count is
	// too small.
	line, ok, err = r.next()
	if err != nil {
		return nil, err
	}
	if ok {
		if strings.HasPrefix(line, memberPrefix) {
			return nil, r.errorf("%s: more than %d members", rec.Name, count)
		}
		r.peeked = &line
	}
	return rec, nil
}

func (r *Reader) parseHeader(line string) (*Record, int, error) {
	if strings.HasPrefix(line, memberPrefix) {
		return nil, 0, r.errorf("member line outside a record")
	}
	parts := strings.Split(line, ":")
	if len(parts) != 3 {
		return nil, 0, r.errorf("malformed header %q", line)
	}
	if parts[0] == "" || parts[1] == "" {
		return nil, 0, r.errorf("malformed header %q", line)
	}
	count, err := strconv.Atoi(parts[2])
	if err != nil || count < 0 {
		return nil, 0, r.errorf("invalid member count %q", parts[2])
	}
	rec := &Record{Name: parts[0]}
	if parts[1] != NullSuper {
		rec.SuperName = parts[1]
	}
	return rec, count, nil
}

func (r *Reader) parseMember(line string) (Member, error) {
	body := strings.TrimPrefix(line, memberPrefix)
	var m Member
	if s, ok := strings.CutSuffix(body, polymorphicSuffix); ok {
		body = s
		m.Polymorphic = true
	}
	open := strings.IndexByte(body, '(')
	if open <= 0 {
		return Member{}, r.errorf("malformed member %q", line)
	}
	m.Name = body[:open]
	desc, err := classfile.ParseMethodDescriptor(body[open:])
	if err != nil {
		return Member{}, r.errorf("member %s: %v", m.Name, err)
	}
	for _, p := range desc.Parameters {
		m.Params = append(m.Params, p.Descriptor())
	}
	m.Return = desc.ReturnType.Descriptor()
	if m.Name == ConstructorName {
		m.Kind = Constructor
		if m.Return != VoidDescriptor {
			return Member{}, r.errorf("constructor returns %s", m.Return)
		}
	}
	return m, nil
}

// ReadAll reads every record of r.
func ReadAll(r io.Reader) ([]*Record, error) {
	rd := NewReader(r)
	var records []*Record
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
