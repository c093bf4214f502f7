package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewTweet(t *testing.T) {
	t.Parallel()
	// Test valid tweet creation
	tweet, err := NewTweet("AI is amazing", 3, SentimentPositive, DefaultWordCountTolerance)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if tweet.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if tweet.Text != "AI is amazing" {
		t.Errorf("Expected text %q, got %q", "AI is amazing", tweet.Text)
	}

	if tweet.WordCount != 3 {
		t.Errorf("Expected word count 3, got %d", tweet.WordCount)
	}

	if tweet.Sentiment != SentimentPositive {
		t.Errorf("Expected sentiment %q, got %q", SentimentPositive, tweet.Sentiment)
	}

	if tweet.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}
}

func TestNewTweetTrimsText(t *testing.T) {
	t.Parallel()

	tweet, err := NewTweet("  Coffee fuels everything  ", 3, SentimentNeutral, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tweet.Text != "Coffee fuels everything" {
		t.Errorf("Expected trimmed text, got %q", tweet.Text)
	}
}

func TestNewTweetValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		wordCount int
		sentiment Sentiment
		tolerance int
		wantErr   error
	}{
		{
			name:      "empty text",
			text:      "   ",
			wordCount: 3,
			sentiment: SentimentPositive,
			tolerance: 2,
			wantErr:   ErrTweetTextEmpty,
		},
		{
			name:      "text too long",
			text:      strings.Repeat("a", MaxTweetLength+1),
			wordCount: 1,
			sentiment: SentimentNeutral,
			tolerance: 2,
			wantErr:   ErrTweetTextTooLong,
		},
		{
			name:      "zero word count",
			text:      "AI is amazing",
			wordCount: 0,
			sentiment: SentimentPositive,
			tolerance: 2,
			wantErr:   ErrWordCountInvalid,
		},
		{
			name:      "negative word count",
			text:      "AI is amazing",
			wordCount: -1,
			sentiment: SentimentPositive,
			tolerance: 2,
			wantErr:   ErrWordCountInvalid,
		},
		{
			name:      "unknown sentiment",
			text:      "AI is amazing",
			wordCount: 3,
			sentiment: Sentiment("ecstatic"),
			tolerance: 2,
			wantErr:   ErrSentimentInvalid,
		},
		{
			name:      "word count beyond tolerance",
			text:      "AI is amazing",
			wordCount: 10,
			sentiment: SentimentPositive,
			tolerance: 2,
			wantErr:   ErrWordCountMismatch,
		},
		{
			name:      "word count at tolerance boundary",
			text:      "AI is amazing",
			wordCount: 5,
			sentiment: SentimentPositive,
			tolerance: 2,
			wantErr:   nil,
		},
		{
			name:      "word count under actual within tolerance",
			text:      "The quick brown fox jumps",
			wordCount: 3,
			sentiment: SentimentNeutral,
			tolerance: 2,
			wantErr:   nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTweet(tc.text, tc.wordCount, tc.sentiment, tc.tolerance)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewTweetNegativeToleranceUsesDefault(t *testing.T) {
	t.Parallel()

	// Declared 5 vs actual 3 is within the default tolerance of 2.
	_, err := NewTweet("AI is amazing", 5, SentimentPositive, -1)
	if err != nil {
		t.Errorf("Expected default tolerance to apply, got %v", err)
	}

	_, err = NewTweet("AI is amazing", 6, SentimentPositive, -1)
	if !errors.Is(err, ErrWordCountMismatch) {
		t.Errorf("Expected word count mismatch, got %v", err)
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"AI is amazing", 3},
		{"The quick brown fox", 4},
		{"", 0},
		{"   spaced    out   words  ", 3},
		{"one", 1},
	}

	for _, tc := range tests {
		if got := CountWords(tc.text); got != tc.want {
			t.Errorf("CountWords(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}
