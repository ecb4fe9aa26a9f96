package document

import (
	"io"

	kdldoc "github.com/sblinch/kdl-go/document"
)

// FromKDL adapts a parsed kdl-go document into the [Document]
// contract. kdl-go is the "external" document model spec §1 calls out
// of scope for the core: this is the only file in the module that
// imports it.
func FromKDL(doc *kdldoc.Document) Document {
	if doc == nil {
		return kdlDocument{}
	}
	return kdlDocument{doc: doc}
}

// ReadKDL parses r as a KDL document and adapts the result.
func ReadKDL(r io.Reader) (Document, error) {
	doc, err := kdldoc.Read(r)
	if err != nil {
		return nil, err
	}
	return FromKDL(doc), nil
}

type kdlDocument struct {
	doc *kdldoc.Document
}

func (d kdlDocument) Nodes() []Node {
	if d.doc == nil {
		return nil
	}
	nodes := make([]Node, 0, len(d.doc.Nodes))
	for _, n := range d.doc.Nodes {
		nodes = append(nodes, kdlNode{node: n})
	}
	return nodes
}

type kdlNode struct {
	node *kdldoc.Node
}

func (n kdlNode) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Name.Value
}

// Entries combines kdl-go's separately tracked positional arguments
// and named properties into the single ordered list spec §3 describes
// ("node.entries() -> ordered list of (name?, value) pairs"). The
// entry matcher (spec §4.6) only ever counts positional entries among
// themselves and looks up named entries by first match, so arguments
// followed by properties is observationally equivalent to their true
// interleaved source order for every predicate this language supports.
func (n kdlNode) Entries() []Entry {
	if n.node == nil {
		return nil
	}
	entries := make([]Entry, 0, len(n.node.Arguments)+len(n.node.Properties))
	for _, arg := range n.node.Arguments {
		entries = append(entries, kdlEntry{value: arg})
	}
	for _, prop := range n.node.Properties {
		entries = append(entries, kdlEntry{name: prop.Key.Value, hasName: true, value: prop.Value})
	}
	return entries
}

func (n kdlNode) Children() Document {
	if n.node == nil || n.node.Children == nil {
		return nil
	}
	return FromKDL(n.node.Children)
}

type kdlEntry struct {
	name    string
	hasName bool
	value   *kdldoc.Value
}

func (e kdlEntry) Name() (string, bool) {
	return e.name, e.hasName
}

func (e kdlEntry) Value() EntryValue {
	return kdlValue{value: e.value}
}

type kdlValue struct {
	value *kdldoc.Value
}

func (v kdlValue) IsString() bool { return v.value != nil && v.value.Type == kdldoc.StringType }
func (v kdlValue) IsInt() bool    { return v.value != nil && v.value.Type == kdldoc.IntegerType }
func (v kdlValue) IsFloat() bool  { return v.value != nil && v.value.Type == kdldoc.FloatType }
func (v kdlValue) IsBool() bool   { return v.value != nil && v.value.Type == kdldoc.BooleanType }
func (v kdlValue) IsNull() bool   { return v.value == nil || v.value.Type == kdldoc.NullType }

func (v kdlValue) StringVal() string {
	if v.value == nil {
		return ""
	}
	return v.value.AsString()
}

func (v kdlValue) IntVal() int64 {
	if v.value == nil {
		return 0
	}
	return v.value.AsInt()
}

func (v kdlValue) FloatVal() float64 {
	if v.value == nil {
		return 0
	}
	return v.value.AsFloat()
}

func (v kdlValue) BoolVal() bool {
	if v.value == nil {
		return false
	}
	return v.value.AsBool()
}
