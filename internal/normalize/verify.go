package normalize

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// VerifySections maps a claim-verification response into display sections.
// The verification flow has a fixed shape (verdict, score, justification,
// evidence list) but is rendered with the same Section type as analyze
// results so both paths share one renderer.
func VerifySections(raw []byte) []Section {
	body := strings.TrimSpace(string(raw))
	if body == "" || !gjson.Valid(body) {
		return []Section{fallbackSection()}
	}

	root := gjson.Parse(body)

	sec := Section{Kind: KindFactCheck, Title: "Claim Verification"}

	if verdict := root.Get("verdict"); verdict.Exists() && verdict.String() != "" {
		sec.add("Verdict", verdict.String())
	}
	if score := root.Get("score"); score.Exists() {
		sec.add("Score", formatScore(score.Float()))
	}
	if just := root.Get("justification"); just.Exists() && just.String() != "" {
		sec.add("Justification", just.String())
	}

	if evidence := root.Get("evidence"); evidence.IsArray() {
		evidence.ForEach(func(key, item gjson.Result) bool {
			label := fmt.Sprintf("Evidence %d", key.Int()+1)
			snippet := item.Get("snippet").String()
			url := item.Get("url").String()
			switch {
			case snippet != "" && url != "":
				sec.add(label, fmt.Sprintf("%s (%s)", snippet, url))
			case snippet != "":
				sec.add(label, snippet)
			case url != "":
				sec.add(label, url)
			}
			return true
		})
	}

	if len(sec.Fields) == 0 {
		return []Section{fallbackSection()}
	}
	return []Section{sec}
}
