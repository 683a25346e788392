package telegram

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/start", "start"},
		{"/reading", "reading"},
		{"/reading@soothsayer_bot", "reading"},
		{"/help extra args", "help"},
		{"/help@bot args", "help"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseCommand(tt.in); got != tt.want {
				t.Errorf("ParseCommand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsCommand(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"/start", true},
		{"start", false},
		{"", false},
		{"привет /start", false},
	}

	for _, tt := range tests {
		if got := IsCommand(tt.in); got != tt.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
