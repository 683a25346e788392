package domain

import (
	"testing"
	"time"
)

func TestInitialReadingState(t *testing.T) {
	ref := MessageRef{Platform: PlatformTelegram, ID: "msg-1"}
	before := time.Now()
	state := InitialReadingState(ref, true)
	after := time.Now()

	if state.MessageID != "msg-1" || state.Platform != PlatformTelegram {
		t.Errorf("message ref = %s, want telegram:msg-1", state.Ref())
	}
	if !state.IsTarget {
		t.Error("IsTarget = false, want true")
	}
	if state.RequiredInfo != InitialBirthInfo() {
		t.Errorf("RequiredInfo = %+v, want all-empty record", state.RequiredInfo)
	}
	if state.Result != "" || state.ResultVoicePath != "" {
		t.Errorf("result fields not empty: %q / %q", state.Result, state.ResultVoicePath)
	}
	if state.IsPlayed {
		t.Error("IsPlayed = true, want false")
	}
	if state.CreatedAt.Before(before) || state.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v, want within [%v, %v]", state.CreatedAt, before, after)
	}
	if state.HasResult() || state.HasVoice() {
		t.Error("fresh state reports result/voice present")
	}
}

func TestPlatformIsValid(t *testing.T) {
	tests := []struct {
		platform Platform
		valid    bool
	}{
		{PlatformTelegram, true},
		{PlatformYouTube, true},
		{Platform(""), false},
		{Platform("discord"), false},
	}
	for _, tt := range tests {
		if got := tt.platform.IsValid(); got != tt.valid {
			t.Errorf("Platform(%q).IsValid() = %v, want %v", tt.platform, got, tt.valid)
		}
	}
}

func TestMessageRefString(t *testing.T) {
	ref := MessageRef{Platform: PlatformYouTube, ID: "abc"}
	if got := ref.String(); got != "youtube:abc" {
		t.Errorf("String() = %q, want %q", got, "youtube:abc")
	}
}
