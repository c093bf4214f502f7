package generation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/chirp/internal/domain"
)

// tweetPromptText instructs the model to answer with strict JSON only. The
// word-count examples anchor the model's counting so the declared word_count
// survives the validator's cross-check.
const tweetPromptText = `You are a JSON-only API. Generate a {{.Tone}} tweet about "{{.Topic}}".

CRITICAL REQUIREMENTS:
1. Respond ONLY with valid JSON (no explanations, no markdown, no backticks)
2. Count words EXACTLY - be precise with the word_count field
3. Use exactly {{.MaxWords}} words in the tweet

Required JSON format:
{
    "tweet": "your tweet with exactly {{.MaxWords}} words",
    "word_count": {{.MaxWords}},
    "sentiment": "positive|negative|neutral"
}

WORD COUNT EXAMPLE:
"AI is amazing" = 3 words
"The quick brown fox" = 4 words

Topic: {{.Topic}}
Tone: {{.Tone}}
Target words: {{.MaxWords}}

JSON response:`

var tweetPromptTemplate = template.Must(template.New("tweet").Parse(tweetPromptText))

// BuildPrompt renders the generation prompt for a tweet request. The request
// is validated first, so an invalid topic, tone, or word target fails here
// before any network traffic. Template substitution is deterministic and pure.
func BuildPrompt(req domain.TweetRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("invalid tweet request: %w", err)
	}

	var buf bytes.Buffer
	if err := tweetPromptTemplate.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
