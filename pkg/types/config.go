package types

import "path/filepath"

// PathsConfig locates the source document and the stage outputs. Relative
// paths are resolved against Root.
type PathsConfig struct {
	// Root is the project root containing the README (default ".").
	Root string `json:"root" yaml:"root" mapstructure:"root"`

	// Readme is the source document (default "README.md").
	Readme string `json:"readme" yaml:"readme" mapstructure:"readme"`

	// OutputDir receives all stage outputs (default "data/outputs").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// TableFile is the A0 CSV written by extract (default "a0.csv").
	TableFile string `json:"table_file" yaml:"table_file" mapstructure:"table_file"`

	// DocumentFile is the JSON-LD document written by jsonld (default "a0.jsonld").
	DocumentFile string `json:"document_file" yaml:"document_file" mapstructure:"document_file"`

	// GraphFile is the triple file written by rdf (default "a0.ttl").
	GraphFile string `json:"graph_file" yaml:"graph_file" mapstructure:"graph_file"`
}

// ReadmePath returns the resolved source document path.
func (p PathsConfig) ReadmePath() string { return p.resolve(p.Readme) }

// OutputPath returns the resolved output directory.
func (p PathsConfig) OutputPath() string { return p.resolve(p.OutputDir) }

// TablePath returns the resolved A0 CSV path.
func (p PathsConfig) TablePath() string { return filepath.Join(p.OutputPath(), p.TableFile) }

// DocumentPath returns the resolved JSON-LD path.
func (p PathsConfig) DocumentPath() string { return filepath.Join(p.OutputPath(), p.DocumentFile) }

// GraphPath returns the resolved triple file path.
func (p PathsConfig) GraphPath() string { return filepath.Join(p.OutputPath(), p.GraphFile) }

func (p PathsConfig) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Root, path)
}

// ExtractionConfig holds the fixed classification values stamped on every
// extracted record.
type ExtractionConfig struct {
	// Subject is the project name used as subject for listing sections.
	Subject string `json:"subject" yaml:"subject" mapstructure:"subject"`

	Domain string `json:"domain" yaml:"domain" mapstructure:"domain"`
	Stage  string `json:"stage" yaml:"stage" mapstructure:"stage"`

	// IDPrefix namespaces generated identifiers, e.g. "sys:kg_".
	IDPrefix string `json:"id_prefix" yaml:"id_prefix" mapstructure:"id_prefix"`

	SourceLocation string `json:"source_location" yaml:"source_location" mapstructure:"source_location"`
	SourceType     string `json:"source_type" yaml:"source_type" mapstructure:"source_type"`
}

// GraphFormat selects the triple notation written by the rdf stage.
type GraphFormat string

const (
	FormatTurtle   GraphFormat = "turtle"
	FormatNTriples GraphFormat = "ntriples"
)

// SerializationConfig holds settings for the rdf stage.
type SerializationConfig struct {
	Format GraphFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// OutputFormat selects the flow diagram export encoding.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// FlowConfig holds settings for the flow diagram export.
type FlowConfig struct {
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// File is the export base name without extension (default "flow").
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Paths         PathsConfig         `json:"paths" yaml:"paths" mapstructure:"paths"`
	Extraction    ExtractionConfig    `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Serialization SerializationConfig `json:"serialization" yaml:"serialization" mapstructure:"serialization"`
	Flow          FlowConfig          `json:"flow" yaml:"flow" mapstructure:"flow"`
}

// DefaultPipelineConfig returns the layout the pipeline uses when no config
// file is present.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Paths: PathsConfig{
			Root:         ".",
			Readme:       "README.md",
			OutputDir:    filepath.Join("data", "outputs"),
			TableFile:    "a0.csv",
			DocumentFile: "a0.jsonld",
			GraphFile:    "a0.ttl",
		},
		Extraction: ExtractionConfig{
			Subject:        "KnowGrph",
			Domain:         "Technology",
			Stage:          "Planning",
			IDPrefix:       "sys:kg_",
			SourceLocation: "README.md",
			SourceType:     "Documentation",
		},
		Serialization: SerializationConfig{Format: FormatTurtle},
		Flow:          FlowConfig{Format: OutputJSON, File: "flow"},
	}
}
