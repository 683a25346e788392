package domain

import (
	"errors"
	"testing"
)

func TestValidateBirthday(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid date", "1999/07/20", true},
		{"valid leap day", "2024/02/29", true},
		{"valid first day", "2000/01/01", true},
		{"empty passes", "", true},
		{"month out of range", "2023/13/01", false},
		{"day out of range", "2023/02/30", false},
		{"non leap feb 29", "2023/02/29", false},
		{"wrong separator", "1999-07-20", false},
		{"not zero padded", "1999/7/20", false},
		{"two digit year", "99/07/20", false},
		{"trailing garbage", "1999/07/20x", false},
		{"letters", "birthday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBirthday(tt.value)
			if tt.valid {
				if err != nil {
					t.Fatalf("ValidateBirthday(%q) returned error: %v", tt.value, err)
				}
				if got != tt.value {
					t.Errorf("ValidateBirthday(%q) = %q, want value unchanged", tt.value, got)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateBirthday(%q) = nil error, want FormatError", tt.value)
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("ValidateBirthday(%q) error type = %T, want *FormatError", tt.value, err)
			}
			if formatErr.Field != "birthday" {
				t.Errorf("FormatError.Field = %q, want %q", formatErr.Field, "birthday")
			}
		})
	}
}

func TestValidateBirthTime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"midnight", "00:00", true},
		{"last minute", "23:59", true},
		{"morning", "08:15", true},
		{"empty passes", "", true},
		{"hour 24", "24:00", false},
		{"minute 60", "12:60", false},
		{"not zero padded", "8:15", false},
		{"wrong separator", "08.15", false},
		{"with seconds", "08:15:00", false},
		{"letters", "noon", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBirthTime(tt.value)
			if tt.valid {
				if err != nil {
					t.Fatalf("ValidateBirthTime(%q) returned error: %v", tt.value, err)
				}
				if got != tt.value {
					t.Errorf("ValidateBirthTime(%q) = %q, want value unchanged", tt.value, got)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateBirthTime(%q) = nil error, want FormatError", tt.value)
			}
			var formatErr *FormatError
			if !errors.As(err, &formatErr) {
				t.Fatalf("ValidateBirthTime(%q) error type = %T, want *FormatError", tt.value, err)
			}
			if formatErr.Field != "birth_time" {
				t.Errorf("FormatError.Field = %q, want %q", formatErr.Field, "birth_time")
			}
		})
	}
}

func TestSupplementByDefault(t *testing.T) {
	info := InitialBirthInfo()
	info.SupplementByDefault()

	want := BirthInfo{
		Name:       "",
		Birthday:   "",
		BirthTime:  "00:00",
		Birthplace: "Tokyo",
		Worries:    "",
	}
	if info != want {
		t.Errorf("after SupplementByDefault: %+v, want %+v", info, want)
	}

	// имя и дата рождения никогда не дополняются
	if info.SatisfiedAll() {
		t.Error("SatisfiedAll() = true for record with empty name and birthday")
	}

	// идемпотентность
	again := info
	again.SupplementByDefault()
	if again != info {
		t.Errorf("SupplementByDefault is not idempotent: %+v != %+v", again, info)
	}
}

func TestSupplementByDefaultKeepsFilledFields(t *testing.T) {
	info := BirthInfo{
		Name:       "Aya",
		Birthday:   "1999/07/20",
		BirthTime:  "08:15",
		Birthplace: "Kyoto",
		Worries:    "career",
	}
	want := info
	info.SupplementByDefault()
	if info != want {
		t.Errorf("SupplementByDefault changed filled fields: %+v, want %+v", info, want)
	}
}

func TestSupplementByDefaultIgnoresFormat(t *testing.T) {
	// дополнение смотрит только на пустоту: кривое непустое время не трогаем
	info := BirthInfo{BirthTime: "25:99"}
	info.SupplementByDefault()
	if info.BirthTime != "25:99" {
		t.Errorf("BirthTime = %q, want untouched %q", info.BirthTime, "25:99")
	}
	if info.SatisfiedAll() {
		t.Error("SatisfiedAll() = true with malformed birth_time")
	}
}

func TestSatisfiedAll(t *testing.T) {
	tests := []struct {
		name string
		info BirthInfo
		want bool
	}{
		{
			"complete record",
			BirthInfo{Name: "Aya", Birthday: "1999/07/20", BirthTime: "08:15", Birthplace: "Kyoto", Worries: "career"},
			true,
		},
		{
			"empty worries still satisfied",
			BirthInfo{Name: "Aya", Birthday: "1999/07/20", BirthTime: "08:15", Birthplace: "Kyoto"},
			true,
		},
		{
			"initial record",
			InitialBirthInfo(),
			false,
		},
		{
			"missing name",
			BirthInfo{Birthday: "1999/07/20", BirthTime: "08:15", Birthplace: "Kyoto"},
			false,
		},
		{
			"missing birthplace",
			BirthInfo{Name: "Aya", Birthday: "1999/07/20", BirthTime: "08:15"},
			false,
		},
		{
			"malformed birthday folds to false",
			BirthInfo{Name: "Aya", Birthday: "1999/13/20", BirthTime: "08:15", Birthplace: "Kyoto"},
			false,
		},
		{
			"malformed birth time folds to false",
			BirthInfo{Name: "Aya", Birthday: "1999/07/20", BirthTime: "24:00", Birthplace: "Kyoto"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.SatisfiedAll(); got != tt.want {
				t.Errorf("SatisfiedAll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBirthInfoString(t *testing.T) {
	info := BirthInfo{Name: "Aya", Birthday: "1999/07/20", BirthTime: "08:15", Birthplace: "Kyoto", Worries: "career"}
	want := "Aya (1999/07/20 08:15 Kyoto), worries: career"
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
