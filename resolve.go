// Copyright 2024 RunReveal Inc.
// SPDX-License-Identifier: Apache-2.0

// Package kdlpath resolves a parsed path-query against a KDL-like
// document, returning the ordered list of matching nodes (spec §4.7
// "Resolver").
package kdlpath

import (
	"github.com/glcraft/kdlpath/document"
	"github.com/glcraft/kdlpath/parser"
)

// Resolve walks doc applying path, returning the matched nodes in
// document order (spec §6 "resolve(&Document, Path) -> Vec<&Node>").
func Resolve(doc document.Document, path parser.Path) []document.Node {
	var out []document.Node
	var parents []document.Node
	var nodes []document.Node
	if doc != nil {
		nodes = doc.Nodes()
	}
	walk(nodes, parents, path, &out)
	return out
}

// walk implements spec §4.7: it filters candidates by the head
// segment, applies the segment's range, then either appends surviving
// nodes to out (tail empty) or recurses into each surviving node's
// children with the tail.
func walk(candidates []document.Node, parents []document.Node, path parser.Path, out *[]document.Node) {
	if len(path) == 0 {
		*out = append(*out, candidates...)
		return
	}
	head, tail := path[0], path[1:]

	var filtered []document.Node
	switch head.Kind {
	case parser.Root:
		filtered = filterByEntries(candidates, head.Entries)

	case parser.Named:
		for _, n := range candidates {
			if n.Name() == head.Name && entriesMatch(n, head.Entries) {
				filtered = append(filtered, n)
			}
		}

	case parser.Any:
		filtered = filterByEntries(candidates, head.Entries)

	case parser.Anywhere:
		filtered = filterByEntries(preOrder(candidates), head.Entries)

	case parser.Parent:
		// parents[len-1] is the node whose children are the current
		// candidates (the node matched by the previous segment); its
		// own parent — what ".." navigates to — is one frame further
		// down the stack.
		if len(parents) >= 2 {
			p := parents[len(parents)-2]
			if entriesMatch(p, head.Entries) {
				filtered = []document.Node{p}
			}
		}
	}

	if head.Range != nil {
		filtered = applyRange(filtered, *head.Range)
	}

	if len(tail) == 0 {
		*out = append(*out, filtered...)
		return
	}

	for _, n := range filtered {
		childParents := append(append([]document.Node(nil), parents...), n)
		var children []document.Node
		if c := n.Children(); c != nil {
			children = c.Nodes()
		}
		walk(children, childParents, tail, out)
	}
}

// preOrder expands candidates to themselves plus every transitive
// descendant, in pre-order (spec §4.7 "Anywhere"): each candidate is
// followed immediately by its own subtree before the next candidate.
func preOrder(candidates []document.Node) []document.Node {
	var out []document.Node
	for _, n := range candidates {
		out = append(out, n)
		if c := n.Children(); c != nil {
			out = append(out, preOrder(c.Nodes())...)
		}
	}
	return out
}

func filterByEntries(candidates []document.Node, entries parser.Entries) []document.Node {
	if len(entries) == 0 {
		return candidates
	}
	var out []document.Node
	for _, n := range candidates {
		if entriesMatch(n, entries) {
			out = append(out, n)
		}
	}
	return out
}

// entriesMatch implements the entry matcher (spec §4.6): the node
// matches iff every query entry constraint is satisfied.
func entriesMatch(n document.Node, entries parser.Entries) bool {
	if len(entries) == 0 {
		return true
	}
	nodeEntries := n.Entries()
	for _, constraint := range entries {
		switch constraint.Kind {
		case parser.EntryPositional:
			if !matchPositional(nodeEntries, constraint) {
				return false
			}
		case parser.EntryNamed:
			if !matchNamed(nodeEntries, constraint) {
				return false
			}
		}
	}
	return true
}

func matchPositional(entries []document.Entry, c parser.EntryConstraint) bool {
	var idx uint64
	for _, e := range entries {
		if _, named := e.Name(); named {
			continue
		}
		if idx == c.Position {
			return c.Value == nil || valueEquals(e.Value(), *c.Value)
		}
		idx++
	}
	return false
}

func matchNamed(entries []document.Entry, c parser.EntryConstraint) bool {
	for _, e := range entries {
		name, named := e.Name()
		if !named || name != c.Name {
			continue
		}
		return c.Value == nil || valueEquals(e.Value(), *c.Value)
	}
	return false
}

// valueEquals compares a document entry's value against a parsed query
// value using tag-discriminated equality (spec §4.6): cross-tag
// comparisons are always unequal.
func valueEquals(dv document.EntryValue, qv parser.Value) bool {
	switch qv.Kind() {
	case parser.ValueString:
		s, _ := qv.StringVal()
		return dv.IsString() && dv.StringVal() == s
	case parser.ValueInt:
		i, _ := qv.IntVal()
		return dv.IsInt() && dv.IntVal() == i
	case parser.ValueFloat:
		f, _ := qv.FloatVal()
		return dv.IsFloat() && dv.FloatVal() == f
	case parser.ValueBool:
		b, _ := qv.BoolVal()
		return dv.IsBool() && dv.BoolVal() == b
	case parser.ValueNull:
		return dv.IsNull()
	default:
		return false
	}
}

// applyRange applies a segment's range to its filtered candidate set
// using half-open skip/take semantics (spec §4.7). Negative indices
// yield the empty stream (spec §9 "Open questions").
func applyRange(nodes []document.Node, r parser.Range) []document.Node {
	n := len(nodes)
	switch r.Kind {
	case parser.RangeAll:
		return nodes
	case parser.RangeOne:
		return sliceSkipTake(nodes, r.From, 1)
	case parser.RangeFrom:
		return sliceSkipTake(nodes, r.From, int64(n))
	case parser.RangeTo:
		return sliceSkipTake(nodes, 0, r.To)
	case parser.RangeBoth:
		return sliceSkipTake(nodes, r.From, r.To-r.From)
	default:
		return nil
	}
}

func sliceSkipTake(nodes []document.Node, skip, take int64) []document.Node {
	if skip < 0 || take < 0 {
		return nil
	}
	n := int64(len(nodes))
	if skip >= n {
		return nil
	}
	end := skip + take
	if end > n {
		end = n
	}
	if end <= skip {
		return nil
	}
	return nodes[skip:end]
}
