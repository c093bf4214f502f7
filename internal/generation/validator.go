package generation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/phrazzld/chirp/internal/domain"
)

// tweetSchema is the wire shape the model is instructed to produce.
type tweetSchema struct {
	// Tweet is the generated tweet text
	Tweet string `json:"tweet"`

	// WordCount is the model's own count of words in the tweet
	WordCount int `json:"word_count"`

	// Sentiment is the model-declared sentiment of the tweet
	Sentiment string `json:"sentiment"`
}

// Validator parses raw model output into a validated domain.Tweet.
//
// Model output is unreliable text, not trusted structured data: extraction
// slices the candidate JSON span out of surrounding commentary rather than
// assuming the whole response is JSON, and validation cross-checks the
// self-reported word count against the actual text.
type Validator struct {
	tolerance int
}

// NewValidator creates a Validator with the given word-count tolerance.
// A negative tolerance selects domain.DefaultWordCountTolerance.
func NewValidator(tolerance int) *Validator {
	if tolerance < 0 {
		tolerance = domain.DefaultWordCountTolerance
	}
	return &Validator{tolerance: tolerance}
}

// ParseTweet extracts and validates a tweet from raw model output.
//
// The candidate JSON span runs from the first '{' to the last '}' in the
// text, tolerating commentary the model may emit around the JSON. Nested
// braces in the tweet text itself can defeat this heuristic; the literal
// first/last policy is kept for compatibility with the prompt contract.
//
// Every failure is a *ParseError matching ErrInvalidResponse, with Kind set
// to the stage that failed: NoJSONFound, MalformedJSON, SchemaViolation, or
// WordCountMismatch.
func (v *Validator) ParseTweet(raw string) (*domain.Tweet, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &ParseError{Kind: ParseNoJSONFound}
	}

	var schema tweetSchema
	if err := json.Unmarshal([]byte(raw[start:end+1]), &schema); err != nil {
		return nil, &ParseError{Kind: ParseMalformedJSON, Err: err}
	}

	tweet, err := domain.NewTweet(schema.Tweet, schema.WordCount, domain.Sentiment(schema.Sentiment), v.tolerance)
	if err != nil {
		kind := ParseSchemaViolation
		if errors.Is(err, domain.ErrWordCountMismatch) {
			kind = ParseWordCountMismatch
		}
		return nil, &ParseError{Kind: kind, Err: err}
	}

	return tweet, nil
}
