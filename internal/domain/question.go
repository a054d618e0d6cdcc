package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Difficulty tags used by both passages and questions.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// QuestionsPerQuiz is the size of a live question batch for a topic.
const QuestionsPerQuiz = 5

// OptionsPerQuestion is the required number of answer options.
const OptionsPerQuestion = 4

// Validation bounds for candidate questions.
const (
	MinQuestionLen = 10
	MaxQuestionLen = 300
	MinOptionLen   = 2
	MaxOptionLen   = 200
)

// CandidateQuestion is an LLM-proposed multiple-choice question prior to
// validation. The json tags match the structure the generation prompt
// demands from the backend.
type CandidateQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// StoredQuestion is a validated, persisted question belonging to the current
// quiz batch for a topic.
type StoredQuestion struct {
	ID            string
	Topic         string
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Difficulty    string
	CreatedAt     time.Time
}

// bannedAnswerPhrases are meta-answers that make a question ungradable as a
// standalone option comparison.
var bannedAnswerPhrases = []string{
	"all of the above",
	"none of the above",
	"both a and b",
	"a and b",
	"all of these",
	"none of these",
}

// letterPrefixRe matches an "A. " or "A) " style option label.
var letterPrefixRe = regexp.MustCompile(`^[A-Za-z][.)]\s+`)

func stripLetterPrefix(s string) string {
	return letterPrefixRe.ReplaceAllString(s, "")
}

// NormalizeCandidate validates an LLM-proposed question. It returns the
// accepted candidate and true, or the zero value and false on rejection.
// The returned candidate may differ from the input only in CorrectAnswer:
// when the correct answer matches an option modulo case or an "A. "/"A) "
// label, it is rewritten to that option's exact trimmed text so that grading
// can compare verbatim. The input is never mutated.
func NormalizeCandidate(c CandidateQuestion) (CandidateQuestion, bool) {
	qlen := utf8.RuneCountInString(c.Question)
	if c.Question == "" || qlen < MinQuestionLen || qlen > MaxQuestionLen {
		return CandidateQuestion{}, false
	}

	if len(c.Options) != OptionsPerQuestion {
		return CandidateQuestion{}, false
	}

	trimmed := make([]string, OptionsPerQuestion)
	seen := make(map[string]bool, OptionsPerQuestion)
	for i, opt := range c.Options {
		t := strings.TrimSpace(opt)
		olen := utf8.RuneCountInString(t)
		if olen < MinOptionLen || olen > MaxOptionLen {
			return CandidateQuestion{}, false
		}
		trimmed[i] = t
		seen[strings.ToLower(t)] = true
	}
	if len(seen) != OptionsPerQuestion {
		return CandidateQuestion{}, false
	}

	correct := strings.TrimSpace(c.CorrectAnswer)
	matched := ""
	for _, t := range trimmed {
		if strings.EqualFold(correct, t) {
			matched = t
			break
		}
	}
	if matched == "" {
		// Fallback: the backend sometimes labels the correct answer or the
		// options with "A. " / "A) " prefixes. Compare with labels stripped
		// from both sides and, on a match, adopt the option's exact text.
		stripped := stripLetterPrefix(correct)
		for _, t := range trimmed {
			if strings.EqualFold(stripped, stripLetterPrefix(t)) {
				matched = t
				break
			}
		}
	}
	if matched == "" {
		return CandidateQuestion{}, false
	}

	lower := strings.ToLower(matched)
	for _, phrase := range bannedAnswerPhrases {
		if strings.Contains(lower, phrase) {
			return CandidateQuestion{}, false
		}
	}

	out := c
	out.CorrectAnswer = matched
	if out.Difficulty == "" {
		out.Difficulty = DifficultyBeginner
	}
	if out.Explanation == "" {
		out.Explanation = "No explanation provided."
	}
	return out, true
}
