package render

import (
	"strings"
	"testing"

	"github.com/AryaMundra/VeriWise/internal/normalize"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Width != 80 {
		t.Errorf("Width = %d, want 80", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("Style = %s, want dark", opts.Style)
	}
}

func TestOptionBuilders(t *testing.T) {
	opts := DefaultOptions().WithWidth(120).WithStyle("light")
	if opts.Width != 120 || opts.Style != "light" {
		t.Errorf("builders did not apply: %+v", opts)
	}
	// Builders return copies
	if DefaultOptions().Width != 80 {
		t.Error("builders must not mutate defaults")
	}
}

func TestCacheKey(t *testing.T) {
	key1 := cacheKey(DefaultOptions())
	key2 := cacheKey(DefaultOptions().WithWidth(100))
	key3 := cacheKey(DefaultOptions().WithStyle("light"))

	if key1 == key2 || key1 == key3 {
		t.Error("distinct options should produce distinct keys")
	}
	if key1 != cacheKey(DefaultOptions()) {
		t.Error("same options should produce the same key")
	}
}

func TestMarkdown(t *testing.T) {
	ClearCache()
	defer ClearCache()

	out, err := Markdown("# Heading\n\nBody text.", DefaultOptions())
	if err != nil {
		t.Fatalf("Markdown failed: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "Body text.") {
		t.Errorf("rendered output missing content:\n%s", out)
	}
}

func TestMarkdown_PooledRendererReuse(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions()
	for i := 0; i < 3; i++ {
		if _, err := Markdown("same content", opts); err != nil {
			t.Fatalf("render %d failed: %v", i, err)
		}
	}
}

func sampleSections() []normalize.Section {
	return []normalize.Section{
		{
			Kind:  normalize.KindBias,
			Title: "Bias Analysis",
			Fields: []normalize.Field{
				{Label: "Label", Value: "left"},
				{Label: "Score", Value: "82.0%"},
			},
		},
		{
			Kind:  normalize.KindAIImage,
			Title: "AI Image Detection",
			Fields: []normalize.Field{
				{Label: "Predicted Class", Value: "real"},
			},
		},
	}
}

func TestSections(t *testing.T) {
	out := Sections(sampleSections())

	for _, want := range []string{"Bias Analysis", "Label", "left", "82.0%", "AI Image Detection"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Section order preserved
	if strings.Index(out, "Bias Analysis") > strings.Index(out, "AI Image Detection") {
		t.Error("sections rendered out of order")
	}
}

func TestSections_Fallback(t *testing.T) {
	out := Sections([]normalize.Section{
		{Kind: normalize.KindFallback, Title: "No Results"},
	})
	if !strings.Contains(out, "No Results") {
		t.Errorf("fallback title missing:\n%s", out)
	}
}

func TestSectionsMarkdown(t *testing.T) {
	out := SectionsMarkdown(sampleSections())

	if !strings.Contains(out, "## Bias Analysis") {
		t.Errorf("missing section heading:\n%s", out)
	}
	if !strings.Contains(out, "**Score:** 82.0%") {
		t.Errorf("missing field line:\n%s", out)
	}
}

func TestSectionsMarkdown_FallbackHasNoFields(t *testing.T) {
	out := SectionsMarkdown([]normalize.Section{
		{Kind: normalize.KindFallback, Title: "No Results"},
	})
	if !strings.Contains(out, "## No Results") {
		t.Errorf("fallback heading missing:\n%s", out)
	}
	if strings.Contains(out, "**") {
		t.Error("fallback section should render no fields")
	}
}
