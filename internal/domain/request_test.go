package domain

import (
	"errors"
	"testing"
)

func TestNewTweetRequest(t *testing.T) {
	t.Parallel()

	req, err := NewTweetRequest("Coffee", ToneHumorous, 20)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if req.Topic != "Coffee" {
		t.Errorf("Expected topic %q, got %q", "Coffee", req.Topic)
	}
	if req.Tone != ToneHumorous {
		t.Errorf("Expected tone %q, got %q", ToneHumorous, req.Tone)
	}
	if req.MaxWords != 20 {
		t.Errorf("Expected max words 20, got %d", req.MaxWords)
	}
}

func TestNewTweetRequestTrimsTopic(t *testing.T) {
	t.Parallel()

	req, err := NewTweetRequest("  Go generics  ", ToneInformative, 25)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if req.Topic != "Go generics" {
		t.Errorf("Expected trimmed topic, got %q", req.Topic)
	}
}

func TestTweetRequestValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		topic    string
		tone     Tone
		maxWords int
		wantErr  error
	}{
		{"invalid tone", "AI", Tone("invalid_tone"), 20, ErrToneInvalid},
		{"max words too high", "AI", ToneCasual, 100, ErrMaxWordsOutOfRange},
		{"max words too low", "AI", ToneCasual, 4, ErrMaxWordsOutOfRange},
		{"empty topic", "", ToneCasual, 20, ErrTopicTooShort},
		{"single char topic", "A", ToneCasual, 20, ErrTopicTooShort},
		{"whitespace topic", "   a   ", ToneCasual, 20, ErrTopicTooShort},
		{"boundary min words", "AI", ToneExcited, 5, nil},
		{"boundary max words", "AI", ToneExcited, 50, nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTweetRequest(tc.topic, tc.tone, tc.maxWords)
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

func TestTones(t *testing.T) {
	t.Parallel()

	tones := Tones()
	if len(tones) != 6 {
		t.Fatalf("Expected 6 tones, got %d", len(tones))
	}
	for _, tone := range tones {
		if !tone.Valid() {
			t.Errorf("Tone %q from Tones() should be valid", tone)
		}
	}

	if Tone("").Valid() {
		t.Error("Empty tone should not be valid")
	}
}
