// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the renderer models used for structured (YAML and JSON) output.

package renderer

// Document is the exported form of one parsed file.
type Document struct {
	File        string       `json:"file,omitempty" yaml:"file,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Tree        *Node        `json:"tree" yaml:"tree"`
}

// Diagnostic is the exported form of a parse problem.
type Diagnostic struct {
	Line    int    `json:"line" yaml:"line"`
	Col     int    `json:"col" yaml:"col"`
	Message string `json:"message" yaml:"message"`
}

// Node is the exported form of a syntax node. Positions are "line:col".
type Node struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Variant  string  `json:"variant,omitempty" yaml:"variant,omitempty"`
	Field    string  `json:"field,omitempty" yaml:"field,omitempty"`
	Text     string  `json:"text,omitempty" yaml:"text,omitempty"`
	Start    string  `json:"start" yaml:"start"`
	End      string  `json:"end" yaml:"end"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}
