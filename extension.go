//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlsrc

// BuildDescription accumulates what has to be compiled. The Source-List
// builder only appends to it.
type BuildDescription interface {
	AddIncludeDir(dir string)
	AddSources(paths ...string)
	// DefineMacro adds a preprocessor definition, a nil value defines the
	// macro without a value.
	DefineMacro(name string, value *string)
}

// Macro is a preprocessor definition.
type Macro struct {
	Name  string  `json:"name" yaml:"name" toml:"name"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
}

// Extension is a BuildDescription for a native extension module.
type Extension struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	IncludeDirs  []string `json:"include_dirs" yaml:"include_dirs" toml:"include_dirs"`
	Sources      []string `json:"sources" yaml:"sources" toml:"sources"`
	DefineMacros []Macro  `json:"define_macros" yaml:"define_macros" toml:"define_macros"`
}

var _ BuildDescription = (*Extension)(nil)

// AddIncludeDir implements BuildDescription.
func (e *Extension) AddIncludeDir(dir string) {
	e.IncludeDirs = append(e.IncludeDirs, dir)
}

// AddSources implements BuildDescription.
func (e *Extension) AddSources(paths ...string) {
	e.Sources = append(e.Sources, paths...)
}

// DefineMacro implements BuildDescription.
func (e *Extension) DefineMacro(name string, value *string) {
	e.DefineMacros = append(e.DefineMacros, Macro{Name: name, Value: value})
}

// Macro returns the definition of name and whether it is defined.
func (e *Extension) Macro(name string) (Macro, bool) {
	for _, m := range e.DefineMacros {
		if m.Name == name {
			return m, true
		}
	}
	return Macro{}, false
}

// CompilerArgs returns the include directories and macros as compiler
// command line arguments (-I and -D), followed by the sources.
func (e *Extension) CompilerArgs() []string {
	args := make([]string, 0, len(e.IncludeDirs)+len(e.DefineMacros)+len(e.Sources))
	for _, dir := range e.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	for _, m := range e.DefineMacros {
		if m.Value == nil {
			args = append(args, "-D"+m.Name)
		} else {
			args = append(args, "-D"+m.Name+"="+*m.Value)
		}
	}
	return append(args, e.Sources...)
}
