package service

import (
	"encoding/json"
	"regexp"
	"strings"

	"studybridge/internal/domain"
)

// generatedPassage is the JSON object the content prompt demands.
type generatedPassage struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Difficulty string `json:"difficulty"`
}

// stripCodeFences removes a surrounding markdown code fence from an LLM
// response, with or without a json language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var (
	titleFieldRe   = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	contentFieldRe = regexp.MustCompile(`"content"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}

// parsePassageResponse turns a raw backend response into passage fields.
// It degrades through three strategies and always yields non-empty content:
// strict JSON parse, regex extraction of the title/content fields from
// malformed JSON, and finally the raw response text as the body. The caller
// synthesizes a title when none could be recovered.
func parsePassageResponse(raw string) generatedPassage {
	cleaned := stripCodeFences(raw)

	var p generatedPassage
	if err := json.Unmarshal([]byte(cleaned), &p); err == nil && p.Content != "" {
		if p.Difficulty == "" {
			p.Difficulty = domain.DifficultyBeginner
		}
		return p
	}

	var out generatedPassage
	if m := titleFieldRe.FindStringSubmatch(cleaned); m != nil {
		out.Title = unescapeJSONString(m[1])
	}
	if m := contentFieldRe.FindStringSubmatch(cleaned); m != nil {
		out.Content = unescapeJSONString(m[1])
	}
	if out.Content != "" {
		out.Difficulty = domain.DifficultyBeginner
		return out
	}

	return generatedPassage{
		Content:    cleaned,
		Difficulty: domain.DifficultyBeginner,
	}
}

// parseCandidateResponse parses the question-generation response into
// candidates. Unlike passage parsing there is no degradation path; a
// malformed array simply costs the attempt.
func parseCandidateResponse(raw string) ([]domain.CandidateQuestion, error) {
	cleaned := stripCodeFences(raw)
	var candidates []domain.CandidateQuestion
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}
