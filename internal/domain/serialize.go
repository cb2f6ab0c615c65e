package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// BuildOption customizes Build
type BuildOption func(*buildOptions)

type buildOptions struct {
	visit func(path string, kind Kind)
}

// WithVisit calls fn for every node created during Build, in document order
func WithVisit(fn func(path string, kind Kind)) BuildOption {
	return func(o *buildOptions) { o.visit = fn }
}

// Build parses the persisted notes value into a new forest.
//
// The value is an array of mappings. Each key is a label; an array value
// makes a folder, a string value makes a note holding the encoded payload
// verbatim. A mapping with several keys yields several siblings in key
// order. Empty input or null yields an empty forest.
func Build(raw []byte, opts ...BuildOption) (*Tree, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := NewTree()
	if len(bytes.TrimSpace(raw)) == 0 {
		return t, nil
	}

	value, typ, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, &MalformedTreeError{Reason: err.Error()}
	}
	switch typ {
	case jsonparser.Null:
		return t, nil
	case jsonparser.Array:
	default:
		return nil, &MalformedTreeError{Reason: fmt.Sprintf("expected array, got %s", typ)}
	}

	b := builder{tree: t, opts: o}
	ids, err := b.array(value, "$")
	if err != nil {
		return nil, err
	}
	t.roots = ids
	return t, nil
}

type builder struct {
	tree *Tree
	opts buildOptions
}

func (b *builder) array(data []byte, path string) ([]NodeID, error) {
	ids := []NodeID{}
	if len(bytes.TrimSpace(data)) <= 2 {
		return ids, nil
	}

	var (
		index   int
		walkErr error
	)
	_, err := jsonparser.ArrayEach(data, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
		if walkErr != nil {
			return
		}
		elemPath := fmt.Sprintf("%s[%d]", path, index)
		index++
		if err != nil {
			walkErr = &MalformedTreeError{Path: elemPath, Reason: err.Error()}
			return
		}
		if typ != jsonparser.Object {
			walkErr = &MalformedTreeError{Path: elemPath, Reason: fmt.Sprintf("expected object, got %s", typ)}
			return
		}
		created, err := b.object(value, elemPath)
		if err != nil {
			walkErr = err
			return
		}
		ids = append(ids, created...)
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if err != nil {
		return nil, &MalformedTreeError{Path: path, Reason: err.Error()}
	}
	return ids, nil
}

func (b *builder) object(data []byte, path string) ([]NodeID, error) {
	var ids []NodeID
	err := jsonparser.ObjectEach(data, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		label := string(key)
		nodePath := path + "." + label

		switch typ {
		case jsonparser.Array:
			id := b.tree.insert(&Node{kind: KindFolder, label: label})
			b.visited(nodePath, KindFolder)
			children, err := b.array(value, nodePath)
			if err != nil {
				return err
			}
			folder := b.tree.nodes[id]
			folder.children = children
			for _, c := range children {
				b.tree.nodes[c].parent = id
			}
			ids = append(ids, id)
		case jsonparser.String:
			content, err := jsonparser.ParseString(value)
			if err != nil {
				return &MalformedTreeError{Path: nodePath, Reason: err.Error()}
			}
			id := b.tree.insert(&Node{kind: KindNote, label: label, content: content})
			b.visited(nodePath, KindNote)
			ids = append(ids, id)
		default:
			return &MalformedTreeError{Path: nodePath, Reason: fmt.Sprintf("expected array or string, got %s", typ)}
		}
		return nil
	})
	if err != nil {
		var malformed *MalformedTreeError
		if errors.As(err, &malformed) {
			return nil, err
		}
		return nil, &MalformedTreeError{Path: path, Reason: err.Error()}
	}
	if len(ids) == 0 {
		return nil, &MalformedTreeError{Path: path, Reason: "empty mapping"}
	}
	return ids, nil
}

func (b *builder) visited(path string, kind Kind) {
	if b.opts.visit != nil {
		b.opts.visit(path, kind)
	}
}

// Entry is the serialized form of a node: {"label": [...]} for a folder,
// {"label": "payload"} for a note.
type Entry struct {
	Label    string
	Content  string
	Folder   bool
	Children []Entry
}

// Entries converts the forest into its serialized shape, root order first
func (t *Tree) Entries() []Entry {
	return t.entries(t.roots)
}

func (t *Tree) entries(ids []NodeID) []Entry {
	out := make([]Entry, 0, len(ids))
	for _, n := range t.resolve(ids) {
		e := Entry{Label: n.label, Folder: n.IsFolder()}
		if n.IsFolder() {
			e.Children = t.entries(n.children)
		} else {
			e.Content = n.content
		}
		out = append(out, e)
	}
	return out
}

// MarshalJSON writes the single-key mapping for the entry
func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e Entry) write(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	if err := writeString(buf, e.Label); err != nil {
		return err
	}
	buf.WriteByte(':')
	if e.Folder {
		if err := writeEntries(buf, e.Children); err != nil {
			return err
		}
	} else if err := writeString(buf, e.Content); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeEntries(buf *bytes.Buffer, entries []Entry) error {
	buf.WriteByte('[')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := e.write(buf); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

// writeString appends s as a JSON string without HTML escaping
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// Serialize writes the forest back into the persisted shape. Order of roots
// and children is preserved and note payloads are written verbatim.
func Serialize(t *Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeEntries(&buf, t.Entries()); err != nil {
		return nil, fmt.Errorf("failed to serialize notes: %w", err)
	}
	return buf.Bytes(), nil
}
