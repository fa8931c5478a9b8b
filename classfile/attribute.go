package classfile

import (
	"encoding/binary"
)

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    interface{}
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type ModuleAttribute struct {
	ModuleNameIndex    uint16
	ModuleFlags        uint16
	ModuleVersionIndex uint16
	Requires           []ModuleRequires
	Exports            []ModuleExports
	Opens              []ModuleOpens
}

type ModuleRequires struct {
	RequiresIndex        uint16
	RequiresFlags        uint16
	RequiresVersionIndex uint16
}

type ModuleExports struct {
	ExportsIndex   uint16
	ExportsFlags   uint16
	ExportsToIndex []uint16
}

// IsQualified reports whether the package is only exported to named modules.
func (e ModuleExports) IsQualified() bool { return len(e.ExportsToIndex) > 0 }

type ModuleOpens struct {
	OpensIndex   uint16
	OpensFlags   uint16
	OpensToIndex []uint16
}

type ModulePackagesAttribute struct {
	PackageIndex []uint16
}

type ModuleResolutionAttribute struct {
	ResolutionFlags uint16
}

func (a *ModuleResolutionAttribute) DoNotResolveByDefault() bool {
	return a != nil && a.ResolutionFlags&DoNotResolveByDefault != 0
}

func (a *AttributeInfo) decode(cp ConstantPool) {
	switch cp.GetUtf8(a.NameIndex) {
	case "InnerClasses":
		a.Parsed = parseInnerClassesAttribute(a.Info)
	case "Module":
		a.Parsed = parseModuleAttribute(a.Info)
	case "ModulePackages":
		a.Parsed = parseModulePackagesAttribute(a.Info)
	case "ModuleResolution":
		a.Parsed = parseModuleResolutionAttribute(a.Info)
	}
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	if ic, ok := a.Parsed.(*InnerClassesAttribute); ok {
		return ic
	}
	return nil
}

func (a *AttributeInfo) AsModule() *ModuleAttribute {
	if m, ok := a.Parsed.(*ModuleAttribute); ok {
		return m
	}
	return nil
}

func (a *AttributeInfo) AsModulePackages() *ModulePackagesAttribute {
	if mp, ok := a.Parsed.(*ModulePackagesAttribute); ok {
		return mp
	}
	return nil
}

func (a *AttributeInfo) AsModuleResolution() *ModuleResolutionAttribute {
	if mr, ok := a.Parsed.(*ModuleResolutionAttribute); ok {
		return mr
	}
	return nil
}

func parseInnerClassesAttribute(info []byte) *InnerClassesAttribute {
	if len(info) < 2 {
		return nil
	}
	count := binary.BigEndian.Uint16(info[0:2])
	if len(info) < 2+int(count)*8 {
		return nil
	}

	ic := &InnerClassesAttribute{
		Classes: make([]InnerClassEntry, count),
	}

	offset := 2
	for i := uint16(0); i < count; i++ {
		ic.Classes[i] = InnerClassEntry{
			InnerClassInfoIndex:   binary.BigEndian.Uint16(info[offset : offset+2]),
			OuterClassInfoIndex:   binary.BigEndian.Uint16(info[offset+2 : offset+4]),
			InnerNameIndex:        binary.BigEndian.Uint16(info[offset+4 : offset+6]),
			InnerClassAccessFlags: AccessFlags(binary.BigEndian.Uint16(info[offset+6 : offset+8])),
		}
		offset += 8
	}

	return ic
}

// parseModuleAttribute decodes the module header, requires, exports and
// opens tables. Uses and provides follow but carry nothing about visibility.
// A truncated attribute yields whatever was decoded before the cut.
func parseModuleAttribute(info []byte) *ModuleAttribute {
	if len(info) < 6 {
		return nil
	}

	m := &ModuleAttribute{
		ModuleNameIndex:    binary.BigEndian.Uint16(info[0:2]),
		ModuleFlags:        binary.BigEndian.Uint16(info[2:4]),
		ModuleVersionIndex: binary.BigEndian.Uint16(info[4:6]),
	}

	offset := 6

	if len(info) < offset+2 {
		return m
	}
	requiresCount := binary.BigEndian.Uint16(info[offset : offset+2])
	offset += 2

	m.Requires = make([]ModuleRequires, 0, requiresCount)
	for i := uint16(0); i < requiresCount; i++ {
		if len(info) < offset+6 {
			return m
		}
		m.Requires = append(m.Requires, ModuleRequires{
			RequiresIndex:        binary.BigEndian.Uint16(info[offset : offset+2]),
			RequiresFlags:        binary.BigEndian.Uint16(info[offset+2 : offset+4]),
			RequiresVersionIndex: binary.BigEndian.Uint16(info[offset+4 : offset+6]),
		})
		offset += 6
	}

	exports, offset, ok := parsePackageDirectives(info, offset)
	for _, d := range exports {
		m.Exports = append(m.Exports, ModuleExports{
			ExportsIndex:   d.index,
			ExportsFlags:   d.flags,
			ExportsToIndex: d.to,
		})
	}
	if !ok {
		return m
	}

	opens, _, _ := parsePackageDirectives(info, offset)
	for _, d := range opens {
		m.Opens = append(m.Opens, ModuleOpens{
			OpensIndex:   d.index,
			OpensFlags:   d.flags,
			OpensToIndex: d.to,
		})
	}

	return m
}

type packageDirective struct {
	index uint16
	flags uint16
	to    []uint16
}

// parsePackageDirectives reads an exports or opens table, which share the
// layout {u2 count; {u2 index; u2 flags; u2 to_count; u2 to[to_count]}}.
func parsePackageDirectives(info []byte, offset int) ([]packageDirective, int, bool) {
	if len(info) < offset+2 {
		return nil, offset, false
	}
	count := binary.BigEndian.Uint16(info[offset : offset+2])
	offset += 2

	directives := make([]packageDirective, 0, count)
	for i := uint16(0); i < count; i++ {
		if len(info) < offset+6 {
			return directives, offset, false
		}
		d := packageDirective{
			index: binary.BigEndian.Uint16(info[offset : offset+2]),
			flags: binary.BigEndian.Uint16(info[offset+2 : offset+4]),
		}
		toCount := binary.BigEndian.Uint16(info[offset+4 : offset+6])
		offset += 6

		if toCount > 0 {
			d.to = make([]uint16, 0, toCount)
		}
		for j := uint16(0); j < toCount; j++ {
			if len(info) < offset+2 {
				return directives, offset, false
			}
			d.to = append(d.to, binary.BigEndian.Uint16(info[offset:offset+2]))
			offset += 2
		}
		directives = append(directives, d)
	}
	return directives, offset, true
}

func parseModulePackagesAttribute(info []byte) *ModulePackagesAttribute {
	if len(info) < 2 {
		return nil
	}

	count := binary.BigEndian.Uint16(info[0:2])
	if len(info) < 2+int(count)*2 {
		return nil
	}

	mp := &ModulePackagesAttribute{
		PackageIndex: make([]uint16, count),
	}

	offset := 2
	for i := uint16(0); i < count; i++ {
		mp.PackageIndex[i] = binary.BigEndian.Uint16(info[offset : offset+2])
		offset += 2
	}

	return mp
}

func parseModuleResolutionAttribute(info []byte) *ModuleResolutionAttribute {
	if len(info) < 2 {
		return nil
	}
	return &ModuleResolutionAttribute{
		ResolutionFlags: binary.BigEndian.Uint16(info[0:2]),
	}
}
