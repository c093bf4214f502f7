package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Request-specific validation errors
var (
	// ErrTopicTooShort is returned when a request topic is shorter than
	// MinTopicLength after trimming.
	ErrTopicTooShort = errors.New("topic must be at least 2 characters")

	// ErrToneInvalid is returned when a request tone is not an allowed value.
	ErrToneInvalid = errors.New("tone is not an allowed value")

	// ErrMaxWordsOutOfRange is returned when a request word target is outside
	// [MinWords, MaxWords].
	ErrMaxWordsOutOfRange = errors.New("max words must be between 5 and 50")
)

// Request bounds.
const (
	MinTopicLength = 2
	MinWords       = 5
	MaxWords       = 50
)

// Tone selects the voice a generated tweet is written in.
type Tone string

// Allowed tone values.
const (
	ToneProfessional Tone = "professional"
	ToneHumorous     Tone = "humorous"
	ToneCasual       Tone = "casual"
	ToneExcited      Tone = "excited"
	ToneInformative  Tone = "informative"
	ToneSarcastic    Tone = "sarcastic"
)

// Tones lists every allowed tone, in a stable order.
func Tones() []Tone {
	return []Tone{
		ToneProfessional,
		ToneHumorous,
		ToneCasual,
		ToneExcited,
		ToneInformative,
		ToneSarcastic,
	}
}

// Valid reports whether t is an allowed tone.
func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneHumorous, ToneCasual, ToneExcited, ToneInformative, ToneSarcastic:
		return true
	}
	return false
}

// TweetRequest describes what to generate: a topic, a tone, and a target word
// count. Requests are validated at construction and rejected otherwise.
type TweetRequest struct {
	Topic    string `json:"topic"`
	Tone     Tone   `json:"tone"`
	MaxWords int    `json:"max_words"`
}

// NewTweetRequest creates a validated TweetRequest. The topic is trimmed.
func NewTweetRequest(topic string, tone Tone, maxWords int) (TweetRequest, error) {
	req := TweetRequest{
		Topic:    strings.TrimSpace(topic),
		Tone:     tone,
		MaxWords: maxWords,
	}

	if err := req.Validate(); err != nil {
		return TweetRequest{}, err
	}
	return req, nil
}

// Validate checks the request against its domain constraints.
func (r TweetRequest) Validate() error {
	if len(strings.TrimSpace(r.Topic)) < MinTopicLength {
		return ErrTopicTooShort
	}

	if !r.Tone.Valid() {
		return fmt.Errorf("%w: %q", ErrToneInvalid, r.Tone)
	}

	if r.MaxWords < MinWords || r.MaxWords > MaxWords {
		return fmt.Errorf("%w: got %d", ErrMaxWordsOutOfRange, r.MaxWords)
	}

	return nil
}
