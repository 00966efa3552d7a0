// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rdf

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// Extensions maps each supported notation to its file extension.
var Extensions = map[types.GraphFormat]string{
	types.FormatTurtle:   ".ttl",
	types.FormatNTriples: ".nt",
}

// OutputPath swaps the extension of path for the one matching format. Paths
// with an extension that belongs to no known format are returned unchanged.
func OutputPath(path string, format types.GraphFormat) string {
	ext, ok := Extensions[format]
	if !ok {
		return path
	}
	for _, other := range Extensions {
		if strings.HasSuffix(path, other) {
			return strings.TrimSuffix(path, other) + ext
		}
	}
	return path
}

// localNameRe matches local names that can be written as prefixed names
// without escaping.
var localNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// TurtleWriter accumulates Turtle text one subject block at a time.
type TurtleWriter struct {
	prefixes map[string]string
	sb       strings.Builder
}

// NewTurtleWriter creates a writer with rdf and xsd prefixes declared.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: map[string]string{
			"rdf": rdfNS,
			"xsd": xsdNS,
		},
	}
}

// SetPrefix declares a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// WritePrefixes writes prefix declarations sorted by prefix.
func (w *TurtleWriter) WritePrefixes() {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, prefix := range keys {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.sb.WriteString("\n")
}

// WriteSubject starts a new subject block.
func (w *TurtleWriter) WriteSubject(subject Term) {
	fmt.Fprintf(&w.sb, "%s\n", w.term(subject))
}

// WritePredicate writes one predicate-object pair. The last pair of a block
// ends with "." instead of ";".
func (w *TurtleWriter) WritePredicate(predicate, object Term, last bool) {
	terminator := " ;"
	if last {
		terminator = " ."
	}
	pred := w.term(predicate)
	if predicate.Kind == KindIRI && predicate.Value == rdfType {
		pred = "a"
	}
	fmt.Fprintf(&w.sb, "    %s %s%s\n", pred, w.term(object), terminator)
}

// WriteBlank writes a blank line between blocks.
func (w *TurtleWriter) WriteBlank() {
	w.sb.WriteString("\n")
}

// String returns the accumulated Turtle output.
func (w *TurtleWriter) String() string {
	return w.sb.String()
}

func (w *TurtleWriter) term(t Term) string {
	switch t.Kind {
	case KindIRI:
		return w.iri(t.Value)
	case KindBlank:
		return t.Value
	default:
		lit := fmt.Sprintf("\"%s\"", escapeString(t.Value))
		switch {
		case t.Language != "":
			return lit + "@" + t.Language
		case t.Datatype != "" && t.Datatype != xsdString:
			return lit + "^^" + w.iri(t.Datatype)
		}
		return lit
	}
}

// iri abbreviates iri to a prefixed name when a declared namespace covers
// it with a plain local name. The longest matching namespace wins.
func (w *TurtleWriter) iri(iri string) string {
	best, bestNS := "", ""
	for prefix, ns := range w.prefixes {
		if strings.HasPrefix(iri, ns) && len(ns) > len(bestNS) && localNameRe.MatchString(iri[len(ns):]) {
			best, bestNS = prefix, ns
		}
	}
	if bestNS == "" {
		return "<" + iri + ">"
	}
	return best + ":" + iri[len(bestNS):]
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
