// Package document defines the tree contract the resolver walks.
// It is deliberately narrow: spec §1 calls the KDL document model "out
// of scope" for the core, so this package exposes only the four
// accessors the resolver needs and leaves everything else — comments,
// type annotations, node IDs, formatting — to whatever concrete model
// is adapted behind it.
package document

// Document is an ordered forest of nodes: the document root, or the
// child document attached to a single node.
type Document interface {
	// Nodes returns the document's top-level nodes in source order.
	Nodes() []Node
}

// Node is one named entry in a Document, carrying an ordered list of
// entries (positional arguments and named properties) and an optional
// child document.
type Node interface {
	// Name returns the node's identifier.
	Name() string
	// Entries returns the node's positional arguments and named
	// properties. Arguments keep their source order among themselves,
	// and so do properties; an implementation may list all arguments
	// before all properties.
	Entries() []Entry
	// Children returns the node's child document, or nil if the node
	// has none.
	Children() Document
}

// Entry is a single positional argument or named property attached to
// a node.
type Entry interface {
	// Name returns the property name, or "" for a positional argument.
	Name() (string, bool)
	// Value returns the entry's decoded scalar value.
	Value() EntryValue
}

// EntryValue is the minimal scalar surface the entry matcher needs to
// compare against a parsed [parser.Value]: the tag and the
// corresponding typed accessor (spec §4.6 "Value-equality is
// structural by tag").
type EntryValue interface {
	// IsString, IsInt, IsFloat, IsBool, and IsNull report the value's
	// tag; exactly one is true.
	IsString() bool
	IsInt() bool
	IsFloat() bool
	IsBool() bool
	IsNull() bool

	StringVal() string
	IntVal() int64
	FloatVal() float64
	BoolVal() bool
}
