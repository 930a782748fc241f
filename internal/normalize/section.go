// Package normalize maps raw analysis-service responses into ordered,
// typed display sections.
package normalize

// SectionKind identifies which recognized portion of an analysis response
// a section was derived from.
type SectionKind string

const (
	KindSummary     SectionKind = "summary"
	KindCombined    SectionKind = "combined"
	KindBias        SectionKind = "bias"
	KindAIImage     SectionKind = "ai_image"
	KindManipulated SectionKind = "manipulated"
	KindVideo       SectionKind = "video"
	KindFactCheck   SectionKind = "factcheck"
	KindFallback    SectionKind = "fallback"
)

// Field is one labeled display line within a section.
type Field struct {
	Label string
	Value string
}

// Section is a typed, titled group of display fields derived from one
// recognized portion of an analysis response. Sections are derived, never
// persisted; normalization of the same payload is idempotent.
type Section struct {
	Kind   SectionKind
	Title  string
	Fields []Field
}

func (s *Section) add(label, value string) {
	s.Fields = append(s.Fields, Field{Label: label, Value: value})
}
