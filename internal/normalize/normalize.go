package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// sectionBuilder checks one recognized response key and, when it is present
// and non-empty, emits a display section. Builders run independently and in
// a fixed order; adding a new result kind means adding a table entry.
type sectionBuilder struct {
	kind  SectionKind
	build func(root gjson.Result) (Section, bool)
}

var builders = []sectionBuilder{
	{KindSummary, buildSummary},
	{KindCombined, buildCombined},
	{KindBias, buildBias},
	{KindAIImage, buildAIImage},
	{KindManipulated, buildManipulated},
	{KindVideo, buildVideo},
	{KindFactCheck, buildFactCheck},
}

// Normalize maps a raw analysis response into an ordered list of sections.
// A nil, malformed, or unrecognized body yields exactly one fallback section.
func Normalize(raw []byte) []Section {
	body := strings.TrimSpace(string(raw))
	if body == "" || !gjson.Valid(body) {
		return []Section{fallbackSection()}
	}

	root := gjson.Parse(body)

	var sections []Section
	for _, b := range builders {
		if sec, ok := b.build(root); ok {
			sections = append(sections, sec)
		}
	}

	if len(sections) == 0 {
		return []Section{fallbackSection()}
	}
	return sections
}

func fallbackSection() Section {
	return Section{
		Kind:   KindFallback,
		Title:  "No Results",
		Fields: []Field{{Label: "Notice", Value: "The analysis service returned no recognizable results."}},
	}
}

func buildSummary(root gjson.Result) (Section, bool) {
	summary := root.Get("summary")
	if !summary.Exists() {
		summary = root.Get("results.summary")
	}
	if summary.Type != gjson.String || strings.TrimSpace(summary.String()) == "" {
		return Section{}, false
	}

	sec := Section{Kind: KindSummary, Title: "Summary"}
	sec.add("Summary", summary.String())
	return sec, true
}

func buildCombined(root gjson.Result) (Section, bool) {
	combined := root.Get("results.combined")
	if !present(combined) {
		return Section{}, false
	}

	sec := Section{Kind: KindCombined, Title: "Combined Analysis"}

	if combined.Type == gjson.String {
		sec.add("Result", combined.String())
	} else {
		if text := firstString(combined, "text", "summary", "result"); text != "" {
			sec.add("Result", text)
		}
		if conf := combined.Get("confidence"); conf.Exists() {
			sec.add("Confidence", formatScore(conf.Float()))
		}
	}

	if len(sec.Fields) == 0 {
		return Section{}, false
	}
	return sec, true
}

func buildBias(root gjson.Result) (Section, bool) {
	bias := root.Get("results.bias")
	if !present(bias) {
		return Section{}, false
	}

	sec := Section{Kind: KindBias, Title: "Bias Analysis"}
	if label := bias.Get("label"); label.Exists() {
		sec.add("Label", label.String())
	}
	if score := bias.Get("score"); score.Exists() {
		sec.add("Score", formatScore(score.Float()))
	}

	if len(sec.Fields) == 0 {
		return Section{}, false
	}
	return sec, true
}

func buildAIImage(root gjson.Result) (Section, bool) {
	aiImage := root.Get("results.ai_image")
	if !present(aiImage) {
		return Section{}, false
	}

	sec := Section{Kind: KindAIImage, Title: "AI Image Detection"}
	if class := aiImage.Get("predicted_class"); class.Exists() {
		sec.add("Predicted Class", class.String())
	}
	if conf := aiImage.Get("confidence"); conf.Exists() {
		sec.add("Confidence", formatScore(conf.Float()))
	}

	if len(sec.Fields) == 0 {
		return Section{}, false
	}
	return sec, true
}

func buildManipulated(root gjson.Result) (Section, bool) {
	manipulated := root.Get("results.manipulated")
	if !present(manipulated) {
		return Section{}, false
	}

	sec := Section{Kind: KindManipulated, Title: "Manipulation Detection"}
	if pred := manipulated.Get("prediction"); pred.Exists() {
		sec.add("Prediction", pred.String())
	}
	if conf := manipulated.Get("confidence"); conf.Exists() {
		sec.add("Confidence", formatScore(conf.Float()))
	}
	if isManip := manipulated.Get("is_manipulated"); isManip.Exists() {
		sec.add("Manipulated", strconv.FormatBool(isManip.Bool()))
	}
	if summary := manipulated.Get("summary"); summary.Exists() && summary.String() != "" {
		sec.add("Summary", summary.String())
	}

	if len(sec.Fields) == 0 {
		return Section{}, false
	}
	return sec, true
}

// videoKeys are checked in order; the first present wins.
var videoKeys = []string{"results.video", "results.video_analysis", "results.video_result"}

func buildVideo(root gjson.Result) (Section, bool) {
	var video gjson.Result
	for _, key := range videoKeys {
		if v := root.Get(key); present(v) {
			video = v
			break
		}
	}
	if !video.Exists() {
		return Section{}, false
	}

	sec := Section{Kind: KindVideo, Title: "Video Analysis"}

	if verdict := video.Get("overall_verdict"); verdict.Exists() {
		if v := verdict.Get("verdict"); v.Exists() {
			sec.add("Verdict", v.String())
		}
		if risk := verdict.Get("risk_level"); risk.Exists() {
			sec.add("Risk Level", risk.String())
		}
	}

	if visual := video.Get("visual_detection"); visual.Exists() {
		if pred := visual.Get("overall_prediction"); pred.Exists() {
			sec.add("Visual Prediction", pred.String())
		}
		if conf := visual.Get("overall_confidence"); conf.Exists() {
			sec.add("Visual Confidence", formatScore(conf.Float()))
		}
	}

	if audio := video.Get("audio_detection"); audio.IsArray() {
		audio.ForEach(func(_, entry gjson.Result) bool {
			label := entry.Get("label").String()
			if label == "" {
				label = "Audio"
			}
			if score := entry.Get("score"); score.Exists() {
				sec.add("Audio: "+label, formatScore(score.Float()))
			} else {
				sec.add("Audio", label)
			}
			return true
		})
	}

	if len(sec.Fields) == 0 {
		return Section{}, false
	}
	return sec, true
}

func buildFactCheck(root gjson.Result) (Section, bool) {
	factcheck := root.Get("results.factcheck")
	// Only an object with at least one own field qualifies
	if !factcheck.IsObject() || len(factcheck.Map()) == 0 {
		return Section{}, false
	}

	sec := Section{Kind: KindFactCheck, Title: "Fact Check"}

	if rawText := factcheck.Get("raw_text"); rawText.Exists() && rawText.String() != "" {
		sec.add("Analyzed Text", rawText.String())
	}

	// Summary may be a plain string or a structured object; either way it
	// is rendered as text.
	if summary := factcheck.Get("summary"); summary.Exists() {
		if summary.Type == gjson.String {
			if summary.String() != "" {
				sec.add("Summary", summary.String())
			}
		} else if summary.IsObject() || summary.IsArray() {
			sec.add("Summary", summary.Raw)
		}
	}

	if claims := factcheck.Get("claim_detail"); claims.IsArray() {
		list := claims.Array()
		if len(list) > 0 {
			sec.add("Claims Checked", strconv.Itoa(len(list)))
			for i, claim := range list {
				sec.add(fmt.Sprintf("Claim %d", i+1), claim.Raw)
			}
		}
	}

	if tokens := factcheck.Get("token_count"); tokens.Exists() {
		sec.add("Token Count", tokens.String())
	}

	if len(sec.Fields) == 0 {
		return Section{}, false
	}
	return sec, true
}

// present reports whether a result exists and is non-empty for its type:
// a non-blank string, an object with fields, an array with elements, or
// any number/boolean.
func present(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch {
	case v.Type == gjson.String:
		return strings.TrimSpace(v.String()) != ""
	case v.IsObject():
		return len(v.Map()) > 0
	case v.IsArray():
		return len(v.Array()) > 0
	case v.Type == gjson.Null:
		return false
	}
	return true
}

// firstString returns the first non-empty string among the named keys.
func firstString(v gjson.Result, keys ...string) string {
	for _, key := range keys {
		if s := v.Get(key); s.Exists() && s.Type == gjson.String && s.String() != "" {
			return s.String()
		}
	}
	return ""
}

// formatScore renders confidence/score values. Values in [0,1] are shown as
// a percentage with one decimal place; anything else is shown as-is.
func formatScore(v float64) string {
	if v >= 0 && v <= 1 {
		return fmt.Sprintf("%.1f%%", v*100)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
