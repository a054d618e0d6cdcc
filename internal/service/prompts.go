package service

import (
	"fmt"

	"studybridge/internal/domain"
)

func buildContentPrompt(topic, institution string) string {
	personalization := ""
	if institution != "" {
		personalization = fmt.Sprintf(
			"\nTailor the material to a student at %s: reference the services, terminology, and situations such a student would actually encounter.\n", institution)
	}

	return fmt.Sprintf(`You are an advisor writing learning material for international students.
Write an educational passage about: %s.
%s
The passage should be practical, specific, and around 300-500 words.

Respond with ONLY a JSON object in this exact format, no other text:
{
  "title": "a short descriptive title",
  "content": "the full passage text",
  "difficulty": "Beginner" | "Intermediate" | "Advanced"
}`, topic, personalization)
}

func buildGroundedQuestionPrompt(passageBody string) string {
	return fmt.Sprintf(`You are a quiz author. Create %d multiple-choice questions derived STRICTLY from the passage below. Do not use outside knowledge; every answer must be verifiable from the passage text.

PASSAGE:
%s

Respond with ONLY a JSON array of %d objects in this exact format, no other text:
[
  {
    "question": "the question text",
    "options": ["first option", "second option", "third option", "fourth option"],
    "correctAnswer": "the correct option text, verbatim",
    "explanation": "one or two sentences explaining the answer",
    "difficulty": "Beginner" | "Intermediate" | "Advanced"
  }
]

Rules:
1. Exactly 4 distinct options per question.
2. correctAnswer must repeat one of the options word for word, with no "A." or "B)" label.
3. Never use options like "All of the above" or "None of the above".`,
		domain.QuestionsPerQuiz, passageBody, domain.QuestionsPerQuiz)
}

func buildGeneralQuestionPrompt(topic, institution string) string {
	personalization := ""
	if institution != "" {
		personalization = fmt.Sprintf(" The quiz taker is an international student at %s; prefer questions relevant to that setting.", institution)
	}

	return fmt.Sprintf(`You are a quiz author. Create %d multiple-choice questions testing general knowledge about: %s.%s

Respond with ONLY a JSON array of %d objects in this exact format, no other text:
[
  {
    "question": "the question text",
    "options": ["first option", "second option", "third option", "fourth option"],
    "correctAnswer": "the correct option text, verbatim",
    "explanation": "one or two sentences explaining the answer",
    "difficulty": "Beginner" | "Intermediate" | "Advanced"
  }
]

Rules:
1. Exactly 4 distinct options per question.
2. correctAnswer must repeat one of the options word for word, with no "A." or "B)" label.
3. Never use options like "All of the above" or "None of the above".`,
		domain.QuestionsPerQuiz, topic, personalization, domain.QuestionsPerQuiz)
}
