// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EntityType classifies a Record. The set is closed.
type EntityType string

const (
	EntityComponent EntityType = "Component"
	EntityProcess   EntityType = "Process"
	// EntityArtifact is only produced when importing flow diagrams whose
	// source node is an input or output.
	EntityArtifact EntityType = "Artifact"
)

// Category values are assigned by the section that produced a record.
const (
	CategoryCoreStack     = "Core Stack"
	CategoryFOSSTools     = "FOSS Tools"
	CategoryMVPPrinciples = "MVP Principles"
	CategoryFlow          = "Flow"
)

// Predicate values emitted by the extractor.
const (
	PredicateUses         = "uses"
	PredicateEmphasizes   = "emphasizes"
	PredicateTransformsTo = "transforms_to"

	// PredicateRelatesTo labels imported flow edges that carry no label.
	PredicateRelatesTo = "relates_to"
)

// Header is the fixed A0 column order.
var Header = []string{
	"graph_id", "domain", "category", "stage", "entity_type",
	"subject", "predicate", "object",
	"attribute", "value", "role", "action", "outcome", "challenge", "solution", "context",
	"source_location", "source_type",
	"component_name", "operation_name", "operation_description",
	"temporal_marker", "impact_description", "source_reference",
	"metadata_json",
}

// RequiredColumns must be present in any A0 table header.
var RequiredColumns = []string{
	"graph_id", "domain", "category", "entity_type", "subject", "predicate", "object",
}

// Record is one extracted subject-predicate-object relation with its
// classification and provenance. Field order follows Header.
type Record struct {
	GraphID    string     `json:"graph_id" yaml:"graph_id"`
	Domain     string     `json:"domain" yaml:"domain"`
	Category   string     `json:"category" yaml:"category"`
	Stage      string     `json:"stage" yaml:"stage"`
	EntityType EntityType `json:"entity_type" yaml:"entity_type"`

	Subject   string `json:"subject" yaml:"subject"`
	Predicate string `json:"predicate" yaml:"predicate"`
	Object    string `json:"object" yaml:"object"`

	Attribute string `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Value     string `json:"value,omitempty" yaml:"value,omitempty"`
	Role      string `json:"role,omitempty" yaml:"role,omitempty"`
	Action    string `json:"action,omitempty" yaml:"action,omitempty"`
	Outcome   string `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Challenge string `json:"challenge,omitempty" yaml:"challenge,omitempty"`
	Solution  string `json:"solution,omitempty" yaml:"solution,omitempty"`
	Context   string `json:"context,omitempty" yaml:"context,omitempty"`

	SourceLocation string `json:"source_location" yaml:"source_location"`
	SourceType     string `json:"source_type" yaml:"source_type"`

	ComponentName        string `json:"component_name,omitempty" yaml:"component_name,omitempty"`
	OperationName        string `json:"operation_name,omitempty" yaml:"operation_name,omitempty"`
	OperationDescription string `json:"operation_description,omitempty" yaml:"operation_description,omitempty"`
	TemporalMarker       string `json:"temporal_marker,omitempty" yaml:"temporal_marker,omitempty"`
	ImpactDescription    string `json:"impact_description,omitempty" yaml:"impact_description,omitempty"`
	SourceReference      string `json:"source_reference,omitempty" yaml:"source_reference,omitempty"`

	// MetadataJSON holds free-form metadata as a JSON object literal.
	MetadataJSON string `json:"metadata_json,omitempty" yaml:"metadata_json,omitempty"`
}

// Fields returns the record's values in Header order.
func (r Record) Fields() []string {
	return []string{
		r.GraphID, r.Domain, r.Category, r.Stage, string(r.EntityType),
		r.Subject, r.Predicate, r.Object,
		r.Attribute, r.Value, r.Role, r.Action, r.Outcome, r.Challenge, r.Solution, r.Context,
		r.SourceLocation, r.SourceType,
		r.ComponentName, r.OperationName, r.OperationDescription,
		r.TemporalMarker, r.ImpactDescription, r.SourceReference,
		r.MetadataJSON,
	}
}

// SetField assigns the value for a column name. Unknown columns are ignored
// and reported as false.
func (r *Record) SetField(column, value string) bool {
	p := r.fieldPtr(column)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Field returns the value for a column name.
func (r Record) Field(column string) (string, bool) {
	p := r.fieldPtr(column)
	if p == nil {
		return "", false
	}
	return *p, true
}

func (r *Record) fieldPtr(column string) *string {
	switch column {
	case "graph_id":
		return &r.GraphID
	case "domain":
		return &r.Domain
	case "category":
		return &r.Category
	case "stage":
		return &r.Stage
	case "entity_type":
		return (*string)(&r.EntityType)
	case "subject":
		return &r.Subject
	case "predicate":
		return &r.Predicate
	case "object":
		return &r.Object
	case "attribute":
		return &r.Attribute
	case "value":
		return &r.Value
	case "role":
		return &r.Role
	case "action":
		return &r.Action
	case "outcome":
		return &r.Outcome
	case "challenge":
		return &r.Challenge
	case "solution":
		return &r.Solution
	case "context":
		return &r.Context
	case "source_location":
		return &r.SourceLocation
	case "source_type":
		return &r.SourceType
	case "component_name":
		return &r.ComponentName
	case "operation_name":
		return &r.OperationName
	case "operation_description":
		return &r.OperationDescription
	case "temporal_marker":
		return &r.TemporalMarker
	case "impact_description":
		return &r.ImpactDescription
	case "source_reference":
		return &r.SourceReference
	case "metadata_json":
		return &r.MetadataJSON
	}
	return nil
}
