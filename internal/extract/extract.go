// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a project README into an ordered sequence of A0
// records. Only four section titles are recognized; everything else in the
// document is ignored.
package extract

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/knowgrph/pkg/types"
)

// ErrSourceMissing reports that the source document does not exist.
var ErrSourceMissing = errors.New("source document not found")

// Section enumerates the recognized README sections.
type Section int

const (
	SectionUnknown Section = iota
	SectionCoreStack
	SectionFOSSTools
	SectionMVPPrinciples
	SectionExampleFlow
)

// sectionTitles maps verbatim heading titles to sections. Matching is case-
// and punctuation-sensitive.
var sectionTitles = map[string]Section{
	"Core Stack":                          SectionCoreStack,
	"FOSS Tools (totally free solutions)": SectionFOSSTools,
	"✅ MVP Principles":                    SectionMVPPrinciples,
	"Example Flow":                        SectionExampleFlow,
}

// SectionFor returns the section a heading title selects, or SectionUnknown.
func SectionFor(title string) Section {
	return sectionTitles[title]
}

// String returns the section's heading title.
func (s Section) String() string {
	for title, sec := range sectionTitles {
		if sec == s {
			return title
		}
	}
	return "unknown"
}

var (
	// parenRe matches parenthesized annotations like "(rdflib)".
	parenRe = regexp.MustCompile(`\(.+?\)`)

	// numberedBoldRe matches "1. **Label**" entries.
	numberedBoldRe = regexp.MustCompile(`^\d+\.\s+\*\*(.+?)\*\*`)

	// dashBoldRe matches "- **Label**" entries.
	dashBoldRe = regexp.MustCompile(`^-\s+\*\*(.+?)\*\*`)
)

const (
	fenceOpen  = "```text"
	fenceClose = "```"
)

// arrow separates stage names in a flow line.
const arrow = "→"

// idSource hands out sequential identifiers. It is threaded through the
// section handlers for a single extraction run.
type idSource struct {
	prefix string
	next   int
}

func (s *idSource) take() string {
	id := fmt.Sprintf("%s%03d", s.prefix, s.next)
	s.next++
	return id
}

// Extractor converts README text into records using fixed classification
// values from its config.
type Extractor struct {
	cfg types.ExtractionConfig
}

// New returns an Extractor. Zero-valued config fields fall back to the
// pipeline defaults.
func New(cfg types.ExtractionConfig) *Extractor {
	def := types.DefaultPipelineConfig().Extraction
	if cfg.Subject == "" {
		cfg.Subject = def.Subject
	}
	if cfg.Domain == "" {
		cfg.Domain = def.Domain
	}
	if cfg.Stage == "" {
		cfg.Stage = def.Stage
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = def.IDPrefix
	}
	if cfg.SourceLocation == "" {
		cfg.SourceLocation = def.SourceLocation
	}
	if cfg.SourceType == "" {
		cfg.SourceType = def.SourceType
	}
	return &Extractor{cfg: cfg}
}

// ExtractFile reads the document at path and extracts its records. A
// missing document wraps ErrSourceMissing.
func (e *Extractor) ExtractFile(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return e.Extract(string(data)), nil
}

// Extract scans text line by line and returns records in document order.
// Unrecognized sections and malformed lines contribute nothing.
func (e *Extractor) Extract(text string) []types.Record {
	lines := splitLines(text)
	ids := &idSource{prefix: e.cfg.IDPrefix, next: 1}

	var (
		records  []types.Record
		current  = SectionUnknown
		flowDone bool
	)

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "## ") {
			current = SectionFor(strings.TrimSpace(line[3:]))
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch current {
		case SectionCoreStack:
			records = append(records, e.coreStack(trimmed, ids)...)
		case SectionFOSSTools:
			records = append(records, e.fossTool(trimmed, ids)...)
		case SectionMVPPrinciples:
			records = append(records, e.principle(trimmed, ids)...)
		case SectionExampleFlow:
			if flowDone || trimmed != fenceOpen {
				continue
			}
			block, end := fencedBlock(lines, i+1)
			records = append(records, e.flow(block, ids)...)
			i = end
			flowDone = true
		}
	}

	return records
}

// coreStack handles "- A + B (note) + **C**" bullets. Each "+" fragment is
// one component.
func (e *Extractor) coreStack(line string, ids *idSource) []types.Record {
	if !strings.HasPrefix(line, "-") || strings.HasPrefix(line, "---") {
		return nil
	}
	item := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "-"), " "))

	var records []types.Record
	for _, part := range strings.Split(item, "+") {
		label := cleanLabel(part)
		if label == "" {
			continue
		}
		records = append(records, e.record(ids, e.cfg.Subject, types.PredicateUses, label,
			types.CategoryCoreStack, types.EntityComponent))
	}
	return records
}

func (e *Extractor) fossTool(line string, ids *idSource) []types.Record {
	m := numberedBoldRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	label := strings.TrimSpace(m[1])
	if label == "" {
		return nil
	}
	return []types.Record{e.record(ids, e.cfg.Subject, types.PredicateUses, label,
		types.CategoryFOSSTools, types.EntityComponent)}
}

func (e *Extractor) principle(line string, ids *idSource) []types.Record {
	if !strings.HasPrefix(line, "-") {
		return nil
	}
	m := dashBoldRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	label := strings.TrimSpace(m[1])
	if label == "" {
		return nil
	}
	return []types.Record{e.record(ids, e.cfg.Subject, types.PredicateEmphasizes, label,
		types.CategoryMVPPrinciples, types.EntityProcess)}
}

// flow turns each arrow chain "A → B → C" into consecutive pairs.
func (e *Extractor) flow(block []string, ids *idSource) []types.Record {
	var records []types.Record
	for _, line := range block {
		chain := splitChain(line)
		for j := 0; j+1 < len(chain); j++ {
			records = append(records, e.record(ids, chain[j], types.PredicateTransformsTo, chain[j+1],
				types.CategoryFlow, types.EntityProcess))
		}
	}
	return records
}

func (e *Extractor) record(ids *idSource, subject, predicate, object, category string, entity types.EntityType) types.Record {
	return types.Record{
		GraphID:        ids.take(),
		Domain:         e.cfg.Domain,
		Category:       category,
		Stage:          e.cfg.Stage,
		EntityType:     entity,
		Subject:        subject,
		Predicate:      predicate,
		Object:         object,
		SourceLocation: e.cfg.SourceLocation,
		SourceType:     e.cfg.SourceType,
		MetadataJSON:   "{}",
	}
}

// cleanLabel strips parenthesized annotations and bold markers.
func cleanLabel(fragment string) string {
	label := strings.TrimSpace(parenRe.ReplaceAllString(strings.TrimSpace(fragment), ""))
	return strings.TrimSpace(strings.ReplaceAll(label, "**", ""))
}

// fencedBlock collects lines from start up to the closing fence. It returns
// the block and the index of the closing fence (or the last line when the
// block is unterminated).
func fencedBlock(lines []string, start int) ([]string, int) {
	for j := start; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == fenceClose {
			return lines[start:j], j
		}
	}
	return lines[start:], len(lines) - 1
}

// splitChain splits a line on arrow separators into trimmed, non-empty names.
// Lines without an arrow yield nil.
func splitChain(line string) []string {
	if !strings.Contains(line, arrow) {
		return nil
	}

	var chain []string
	for _, p := range strings.Split(line, arrow) {
		if p = strings.TrimSpace(p); p != "" {
			chain = append(chain, p)
		}
	}
	return chain
}

// splitLines splits text on line boundaries, accepting \n and \r\n.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
