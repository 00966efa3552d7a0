// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rdf loads a JSON-LD document into an RDF graph and serializes it
// as Turtle or N-Triples. JSON-LD expansion and RDF conversion are done by
// json-gold; this package only validates input and picks the output form.
package rdf

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/pdiddy/knowgrph/internal/jsonld"
	"github.com/pdiddy/knowgrph/pkg/types"
)

const (
	rdfNS        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfType      = rdfNS + "type"
	xsdNS        = "http://www.w3.org/2001/XMLSchema#"
	xsdString    = xsdNS + "string"
	defaultGraph = "@default"
)

// ErrMalformedDocument reports input that cannot be read as a JSON-LD graph
// document.
var ErrMalformedDocument = errors.New("malformed linked-data document")

// TermKind distinguishes the RDF term forms.
type TermKind int

const (
	KindIRI TermKind = iota
	KindBlank
	KindLiteral
)

// Term is one position of a triple.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Language string
}

// Triple is a subject-predicate-object statement in the default graph.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Graph is an in-memory RDF graph converted from a JSON-LD document.
type Graph struct {
	dataset *ld.RDFDataset
	triples []Triple
}

// DocumentToGraph parses JSON-LD text into a graph. The document must be an
// object with an @graph array whose nodes each carry an id and a type.
func DocumentToGraph(data []byte) (*Graph, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	out, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	dataset, ok := out.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected RDF result %T", ErrMalformedDocument, out)
	}

	// ToRDF emits quads in map order. Sorting in place fixes the order seen
	// by both serializers.
	quads := dataset.Graphs[defaultGraph]
	slices.SortStableFunc(quads, func(a, b *ld.Quad) int {
		return compareTriples(tripleFrom(a), tripleFrom(b))
	})

	return &Graph{dataset: dataset, triples: convert(quads)}, nil
}

// ReadFile loads the JSON-LD document at path into a graph.
func ReadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g, err := DocumentToGraph(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return g, nil
}

// Len returns the number of triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Subjects returns the distinct subjects in sorted order.
func (g *Graph) Subjects() []Term {
	seen := make(map[Term]bool)
	var subjects []Term
	for _, t := range g.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			subjects = append(subjects, t.Subject)
		}
	}
	return subjects
}

// Serialize renders the graph in the given notation.
func (g *Graph) Serialize(format types.GraphFormat) (string, error) {
	switch format {
	case types.FormatTurtle:
		return g.turtle(), nil
	case types.FormatNTriples:
		out, err := (&ld.NQuadRDFSerializer{}).Serialize(g.dataset)
		if err != nil {
			return "", fmt.Errorf("serializing N-Triples: %w", err)
		}
		s, _ := out.(string)
		return s, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteFile serializes the graph to path, creating the parent directory.
func (g *Graph) WriteFile(path string, format types.GraphFormat) error {
	text, err := g.Serialize(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

func (g *Graph) turtle() string {
	w := NewTurtleWriter()
	w.SetPrefix("vocab", jsonld.Vocab)
	w.WritePrefixes()

	for i := 0; i < len(g.triples); {
		subject := g.triples[i].Subject
		j := i
		for j < len(g.triples) && g.triples[j].Subject == subject {
			j++
		}
		w.WriteSubject(subject)
		for k := i; k < j; k++ {
			w.WritePredicate(g.triples[k].Predicate, g.triples[k].Object, k == j-1)
		}
		w.WriteBlank()
		i = j
	}
	return w.String()
}

// validate enforces the shape the wrapper produces: a @graph array of
// objects with an id and a type, under either their aliases or keywords.
func validate(doc map[string]any) error {
	rawGraph, ok := doc["@graph"]
	if !ok {
		return fmt.Errorf("%w: missing @graph", ErrMalformedDocument)
	}
	nodes, ok := rawGraph.([]any)
	if !ok {
		return fmt.Errorf("%w: @graph is not an array", ErrMalformedDocument)
	}
	for i, raw := range nodes {
		node, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: @graph[%d] is not an object", ErrMalformedDocument, i)
		}
		if !hasValue(node, "id", "@id") {
			return fmt.Errorf("%w: @graph[%d] has no id", ErrMalformedDocument, i)
		}
		if !hasValue(node, "type", "@type") {
			return fmt.Errorf("%w: @graph[%d] has no type", ErrMalformedDocument, i)
		}
	}
	return nil
}

func hasValue(node map[string]any, keys ...string) bool {
	for _, k := range keys {
		switch v := node[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return true
			}
		case []any:
			if len(v) > 0 {
				return true
			}
		}
	}
	return false
}

func convert(quads []*ld.Quad) []Triple {
	triples := make([]Triple, 0, len(quads))
	for _, q := range quads {
		triples = append(triples, tripleFrom(q))
	}
	return triples
}

func tripleFrom(q *ld.Quad) Triple {
	return Triple{
		Subject:   termFrom(q.Subject),
		Predicate: termFrom(q.Predicate),
		Object:    termFrom(q.Object),
	}
}

// compareTriples orders by subject, then predicate, then object.
func compareTriples(a, b Triple) int {
	if c := compareTerms(a.Subject, b.Subject); c != 0 {
		return c
	}
	if c := compareTerms(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return compareTerms(a.Object, b.Object)
}

func compareTerms(a, b Term) int {
	return cmp.Or(
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Value, b.Value),
		cmp.Compare(a.Datatype, b.Datatype),
		cmp.Compare(a.Language, b.Language),
	)
}

func termFrom(n ld.Node) Term {
	switch v := n.(type) {
	case *ld.IRI:
		return Term{Kind: KindIRI, Value: v.Value}
	case *ld.BlankNode:
		return Term{Kind: KindBlank, Value: v.Attribute}
	case *ld.Literal:
		return Term{Kind: KindLiteral, Value: v.Value, Datatype: v.Datatype, Language: v.Language}
	default:
		return Term{Kind: KindLiteral, Value: n.GetValue()}
	}
}
