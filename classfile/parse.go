package classfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// maxChunk bounds a single variable-length read so that a corrupt length
// field cannot trigger an enormous allocation.
const maxChunk = 64 << 20

var errChunkTooLarge = errors.New("length exceeds limit")

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > maxChunk {
		r.err = errChunkTooLarge
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseBytes(data []byte) (*ClassFile, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a class file. Fields are read and discarded, methods keep only
// their access flags, name and descriptor, and only the class attributes
// needed to decide API visibility and module membership are decoded.
func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}
	if constantPoolCount == 0 {
		return nil, errors.New("invalid constant pool count: 0")
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount-1)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i-1] = entry
		if entry.Tag().wide() {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	cf.Interfaces = make([]uint16, interfacesCount)
	for i := uint16(0); i < interfacesCount; i++ {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read interfaces: %w", r.err)
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", r.err)
	}
	for i := uint16(0); i < fieldsCount; i++ {
		if _, err := readMember(r); err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}

	cf.Methods = make([]MethodInfo, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		method, err := readMember(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = *method
	}

	attributesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read attributes count: %w", r.err)
	}

	cf.Attributes = make([]AttributeInfo, attributesCount)
	for i := uint16(0); i < attributesCount; i++ {
		attr, err := readAttributeInfo(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read attribute %d: %w", i, err)
		}
		attr.decode(cf.ConstantPool)
		cf.Attributes[i] = *attr
	}

	return cf, nil
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, r.err
	}

	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		data := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
		return &ConstantUtf8Info{Value: decodeModifiedUtf8(data)}, nil

	case ConstantClass:
		nameIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &ConstantClassInfo{NameIndex: nameIndex}, nil

	case ConstantModule:
		nameIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &ConstantModuleInfo{NameIndex: nameIndex}, nil

	case ConstantPackage:
		nameIndex := r.readU2()
		if r.err != nil {
			return nil, r.err
		}
		return &ConstantPackageInfo{NameIndex: nameIndex}, nil
	}

	size := tag.payloadSize()
	if size <= 0 {
		return nil, fmt.Errorf("unknown constant pool tag: %d", tag)
	}
	data := r.readBytes(size)
	if r.err != nil {
		return nil, r.err
	}
	return &ConstantOpaqueInfo{EntryTag: tag, Data: data}, nil
}

// readMember reads a field_info or method_info structure. Their layouts are
// identical; member attributes are skipped.
func readMember(r *reader) (*MethodInfo, error) {
	member := &MethodInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}

	attributesCount := r.readU2()
	if r.err != nil {
		return nil, r.err
	}

	for i := uint16(0); i < attributesCount; i++ {
		if _, err := readAttributeInfo(r); err != nil {
			return nil, err
		}
	}

	return member, nil
}

func readAttributeInfo(r *reader) (*AttributeInfo, error) {
	nameIndex := r.readU2()
	length := r.readU4()
	if r.err == nil && length > maxChunk {
		return nil, fmt.Errorf("attribute of %d bytes: %w", length, errChunkTooLarge)
	}
	info := r.readBytes(int(length))
	if r.err != nil {
		return nil, r.err
	}

	return &AttributeInfo{
		NameIndex: nameIndex,
		Info:      info,
	}, nil
}

func decodeModifiedUtf8(data []byte) string {
	runes := make([]rune, 0, len(data))
	i := 0
	for i < len(data) {
		b := data[i]
		if b&0x80 == 0 {
			runes = append(runes, rune(b))
			i++
		} else if b&0xE0 == 0xC0 {
			if i+1 >= len(data) {
				break
			}
			r := rune(b&0x1F)<<6 | rune(data[i+1]&0x3F)
			runes = append(runes, r)
			i += 2
		} else if b&0xF0 == 0xE0 {
			if i+2 >= len(data) {
				break
			}
			r := rune(b&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(data) && data[i+3] == 0xED {
				low := rune(data[i+3]&0x0F)<<12 | rune(data[i+4]&0x3F)<<6 | rune(data[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		} else {
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
