// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jsonld wraps A0 records in a JSON-LD document: a fixed vocabulary
// context plus one graph node per record.
package jsonld

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// Vocab is the default vocabulary IRI for every short field name.
const Vocab = "https://huijoohwee.github.io/schema/vocab.jsonld"

// ErrMalformedDocument reports JSON that is not a JSON-LD document of the
// expected shape.
var ErrMalformedDocument = errors.New("malformed JSON-LD document")

// Term maps a short name to an IRI or keyword. Def holds the raw value of a
// term that is not a plain string, such as an expanded term definition.
type Term struct {
	Name string
	IRI  string
	Def  json.RawMessage
}

// Context is an ordered JSON-LD context. A context given as an array or a
// remote IRI is kept verbatim as a single unnamed term.
type Context []Term

// DefaultContext returns the fixed A0 context: @vocab, id/type aliases, and
// every other column mapped onto itself under the vocabulary.
func DefaultContext() Context {
	ctx := Context{
		{Name: "@vocab", IRI: Vocab},
		{Name: "id", IRI: "@id"},
		{Name: "type", IRI: "@type"},
	}
	for _, col := range types.Header {
		if col == "graph_id" || col == "entity_type" {
			continue
		}
		ctx = append(ctx, Term{Name: col, IRI: col})
	}
	return ctx
}

func (c Context) verbatim() bool {
	return len(c) == 1 && c[0].Name == "" && len(c[0].Def) > 0
}

// MarshalJSON writes terms as an object in declaration order.
func (c Context) MarshalJSON() ([]byte, error) {
	if c.verbatim() {
		return c[0].Def, nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(t.Name)
		if err != nil {
			return nil, err
		}
		v := []byte(t.Def)
		if len(v) == 0 {
			if v, err = marshalString(t.IRI); err != nil {
				return nil, err
			}
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of terms, preserving order. Arrays and
// strings are kept verbatim.
func (c *Context) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty @context")
	}
	switch data[0] {
	case 'n':
		if !bytes.Equal(data, []byte("null")) {
			return fmt.Errorf("invalid @context")
		}
		return nil
	case '[', '"':
		*c = Context{{Def: append(json.RawMessage(nil), data...)}}
		return nil
	case '{':
	default:
		return fmt.Errorf("@context must be an object, array, or string")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}

	var terms Context
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("context term %q: %w", key, err)
		}
		t := Term{Name: key, Def: raw}
		if len(raw) > 0 && raw[0] == '"' {
			if err := json.Unmarshal(raw, &t.IRI); err != nil {
				return fmt.Errorf("context term %q: %w", key, err)
			}
			t.Def = nil
		}
		terms = append(terms, t)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = terms
	return nil
}

// Node is one graph entry. Every field is omitted when empty.
type Node struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`

	Subject   string `json:"subject,omitempty"`
	Predicate string `json:"predicate,omitempty"`
	Object    string `json:"object,omitempty"`

	Domain    string `json:"domain,omitempty"`
	Category  string `json:"category,omitempty"`
	Stage     string `json:"stage,omitempty"`
	Attribute string `json:"attribute,omitempty"`
	Value     string `json:"value,omitempty"`
	Role      string `json:"role,omitempty"`
	Action    string `json:"action,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Challenge string `json:"challenge,omitempty"`
	Solution  string `json:"solution,omitempty"`
	Context   string `json:"context,omitempty"`

	SourceLocation string `json:"source_location,omitempty"`
	SourceType     string `json:"source_type,omitempty"`

	ComponentName        string `json:"component_name,omitempty"`
	OperationName        string `json:"operation_name,omitempty"`
	OperationDescription string `json:"operation_description,omitempty"`
	TemporalMarker       string `json:"temporal_marker,omitempty"`
	ImpactDescription    string `json:"impact_description,omitempty"`
	SourceReference      string `json:"source_reference,omitempty"`
	MetadataJSON         string `json:"metadata_json,omitempty"`
}

// NodeFrom converts a record to its graph node.
func NodeFrom(r types.Record) Node {
	return Node{
		ID:                   r.GraphID,
		Type:                 string(r.EntityType),
		Subject:              r.Subject,
		Predicate:            r.Predicate,
		Object:               r.Object,
		Domain:               r.Domain,
		Category:             r.Category,
		Stage:                r.Stage,
		Attribute:            r.Attribute,
		Value:                r.Value,
		Role:                 r.Role,
		Action:               r.Action,
		Outcome:              r.Outcome,
		Challenge:            r.Challenge,
		Solution:             r.Solution,
		Context:              r.Context,
		SourceLocation:       r.SourceLocation,
		SourceType:           r.SourceType,
		ComponentName:        r.ComponentName,
		OperationName:        r.OperationName,
		OperationDescription: r.OperationDescription,
		TemporalMarker:       r.TemporalMarker,
		ImpactDescription:    r.ImpactDescription,
		SourceReference:      r.SourceReference,
		MetadataJSON:         r.MetadataJSON,
	}
}

// Record converts a node back to an A0 record.
func (n Node) Record() types.Record {
	return types.Record{
		GraphID:              n.ID,
		EntityType:           types.EntityType(n.Type),
		Subject:              n.Subject,
		Predicate:            n.Predicate,
		Object:               n.Object,
		Domain:               n.Domain,
		Category:             n.Category,
		Stage:                n.Stage,
		Attribute:            n.Attribute,
		Value:                n.Value,
		Role:                 n.Role,
		Action:               n.Action,
		Outcome:              n.Outcome,
		Challenge:            n.Challenge,
		Solution:             n.Solution,
		Context:              n.Context,
		SourceLocation:       n.SourceLocation,
		SourceType:           n.SourceType,
		ComponentName:        n.ComponentName,
		OperationName:        n.OperationName,
		OperationDescription: n.OperationDescription,
		TemporalMarker:       n.TemporalMarker,
		ImpactDescription:    n.ImpactDescription,
		SourceReference:      n.SourceReference,
		MetadataJSON:         n.MetadataJSON,
	}
}

// Document is a JSON-LD document with a context and a flat graph.
type Document struct {
	Context Context `json:"@context"`
	Graph   []Node  `json:"@graph"`
}

// Wrap builds a document with the default context and one node per record,
// in record order.
func Wrap(records []types.Record) *Document {
	nodes := make([]Node, len(records))
	for i, r := range records {
		nodes[i] = NodeFrom(r)
	}
	return &Document{Context: DefaultContext(), Graph: nodes}
}

// Encode returns the document as indented JSON without HTML escaping.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encoding JSON-LD: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the document to path, creating the parent directory.
func (d *Document) WriteFile(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Parse decodes a document. The @graph key is required.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Context Context `json:"@context"`
		Graph   *[]Node `json:"@graph"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw.Graph == nil {
		return nil, fmt.Errorf("%w: missing @graph", ErrMalformedDocument)
	}
	return &Document{Context: raw.Context, Graph: *raw.Graph}, nil
}

// ReadFile parses the document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
