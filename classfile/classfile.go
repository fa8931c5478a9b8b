package classfile

import "strings"

const ModuleInfoName = "module-info"

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

// ClassAccessFlags returns the flags a reflective view of the class would
// report. For a nested class the InnerClasses entry describing the class
// itself wins, since protected, private and static are only recorded there.
func (cf *ClassFile) ClassAccessFlags() AccessFlags {
	name := cf.ClassName()
	if ic := cf.innerClasses(); ic != nil {
		for _, entry := range ic.Classes {
			if cf.ConstantPool.GetClassName(entry.InnerClassInfoIndex) == name {
				return entry.InnerClassAccessFlags
			}
		}
	}
	return cf.AccessFlags
}

func (cf *ClassFile) innerClasses() *InnerClassesAttribute {
	if attr := cf.GetAttribute("InnerClasses"); attr != nil {
		return attr.AsInnerClasses()
	}
	return nil
}

// Module returns the decoded Module attribute of a module-info class.
func (cf *ClassFile) Module() *ModuleAttribute {
	if attr := cf.GetAttribute("Module"); attr != nil {
		return attr.AsModule()
	}
	return nil
}

// ModulePackages returns the names of all packages of a module-info class,
// or nil when the attribute is absent.
func (cf *ClassFile) ModulePackages() []string {
	attr := cf.GetAttribute("ModulePackages")
	if attr == nil {
		return nil
	}
	mp := attr.AsModulePackages()
	if mp == nil {
		return nil
	}
	names := make([]string, 0, len(mp.PackageIndex))
	for _, idx := range mp.PackageIndex {
		names = append(names, cf.ConstantPool.GetPackageName(idx))
	}
	return names
}

func (cf *ClassFile) ModuleResolution() *ModuleResolutionAttribute {
	if attr := cf.GetAttribute("ModuleResolution"); attr != nil {
		return attr.AsModuleResolution()
	}
	return nil
}

func (cf *ClassFile) GetMethods(name string) []*MethodInfo {
	var methods []*MethodInfo
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	for i := range cf.Attributes {
		if cf.ConstantPool.GetUtf8(cf.Attributes[i].NameIndex) == name {
			return &cf.Attributes[i]
		}
	}
	return nil
}

// PackageName returns the package part of an internal class name, or ""
// for a class in the unnamed package.
func PackageName(className string) string {
	i := strings.LastIndexByte(className, '/')
	if i < 0 {
		return ""
	}
	return className[:i]
}
