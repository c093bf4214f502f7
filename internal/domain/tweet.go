package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tweet-specific validation errors
var (
	// ErrTweetTextEmpty is returned when a tweet's text is empty after trimming.
	ErrTweetTextEmpty = errors.New("tweet text cannot be empty")

	// ErrTweetTextTooLong is returned when a tweet's text exceeds MaxTweetLength.
	ErrTweetTextTooLong = errors.New("tweet text exceeds maximum length")

	// ErrWordCountInvalid is returned when a tweet's declared word count is not positive.
	ErrWordCountInvalid = errors.New("tweet word count must be positive")

	// ErrWordCountMismatch is returned when a tweet's declared word count deviates
	// from the actual word count by more than the allowed tolerance.
	ErrWordCountMismatch = errors.New("tweet word count does not match actual words")

	// ErrSentimentInvalid is returned when a tweet's sentiment is not a known value.
	ErrSentimentInvalid = errors.New("tweet sentiment must be positive, negative, or neutral")
)

// MaxTweetLength is the maximum number of characters in a tweet's text.
const MaxTweetLength = 280

// DefaultWordCountTolerance is the allowed deviation between a tweet's
// declared word count and the actual word count of its text.
const DefaultWordCountTolerance = 2

// Sentiment classifies the emotional tone of a generated tweet.
type Sentiment string

// Allowed sentiment values.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether s is a known sentiment value.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Tweet is a validated, generated tweet. It is immutable once constructed:
// the declared word count has been cross-checked against the actual text and
// the sentiment is guaranteed to be a known value.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	WordCount int       `json:"word_count"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

// CountWords returns the number of whitespace-separated tokens in text.
// This is the ground truth a declared word count is checked against.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// NewTweet creates a Tweet from model-declared fields, validating the schema
// and cross-checking the declared word count against the actual text within
// the given tolerance. The text is trimmed before validation.
// Returns an error if any check fails.
func NewTweet(text string, wordCount int, sentiment Sentiment, tolerance int) (*Tweet, error) {
	if tolerance < 0 {
		tolerance = DefaultWordCountTolerance
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTweetTextEmpty
	}

	if len(text) > MaxTweetLength {
		return nil, fmt.Errorf("%w: %d characters (max %d)", ErrTweetTextTooLong, len(text), MaxTweetLength)
	}

	if wordCount <= 0 {
		return nil, ErrWordCountInvalid
	}

	if !sentiment.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrSentimentInvalid, sentiment)
	}

	actual := CountWords(text)
	if diff := wordCount - actual; diff > tolerance || diff < -tolerance {
		return nil, fmt.Errorf("%w: claimed %d, actual %d (tolerance %d)",
			ErrWordCountMismatch, wordCount, actual, tolerance)
	}

	return &Tweet{
		ID:        uuid.New(),
		Text:      text,
		WordCount: wordCount,
		Sentiment: sentiment,
		CreatedAt: time.Now().UTC(),
	}, nil
}
