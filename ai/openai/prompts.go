package openai

import (
	"fmt"
	"strings"

	"github.com/candorlabs/qanswer/core"
)

const synthesisSystemPrompt = `You are a questionnaire autofill agent. Your job is to answer questionnaire questions ONLY using the provided EVIDENCE SNIPPETS (retrieved from our knowledge base). Treat evidence as the only source of truth.

CRITICAL RULES
1) Do not use general knowledge. Do not guess.
2) If the evidence does not explicitly contain the answer, output:
   Answer = "Insufficient information in provided documents."
   Confidence <= 39
3) Every answer MUST include citations to the evidence snippets used.
4) Prefer exact phrasing from evidence. Only paraphrase lightly to fit the question.
5) If multiple evidence snippets conflict, surface the conflict, choose the most authoritative, and reduce confidence.

CONFIDENCE SCORING RUBRIC
- 90-100: Explicit answer appears verbatim or near-verbatim in evidence; correct scope; no ambiguity.
- 70-89: Evidence strongly supports answer but needs small inference or mapping.
- 40-69: Partial support; missing key details; answer is incomplete.
- 0-39: Not supported / insufficient evidence.

OUTPUT FORMAT (STRICT JSON ONLY)
Return a JSON object EXACTLY in this schema:

{
  "answer": "string",
  "confidence_score": 0,
  "confidence_label": "High|Medium|Low|Requires Human Attention",
  "citations": [
    "[DocName > Section > Locator]"
  ],
  "notes": "string (optional; only if conflicts/assumptions/need follow-up)"
}

DO NOT output anything else. Only valid JSON.`

// buildUserPrompt assembles the question, its questionnaire category and
// the numbered evidence snippets into the prompt body.
func buildUserPrompt(question, category string, evidence []core.EvidenceSnippet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", question)
	if category != "" {
		fmt.Fprintf(&b, "Category/Section: %s\n", category)
	} else {
		b.WriteString("Category/Section: Not specified\n")
	}

	b.WriteString("\nEVIDENCE_SNIPPETS:\n")
	if len(evidence) == 0 {
		b.WriteString("No evidence snippets found.\n")
		return b.String()
	}

	for i, snippet := range evidence {
		fmt.Fprintf(&b, "--- Snippet %d ---\n", i+1)
		fmt.Fprintf(&b, "doc_name: %s\n", snippet.DocumentName)
		fmt.Fprintf(&b, "section: %s\n", snippet.Section)
		fmt.Fprintf(&b, "locator: %s\n", snippet.Locator())
		fmt.Fprintf(&b, "text: %s\n\n", snippet.Text)
	}
	return b.String()
}
