package slots

import "testing"

func TestDailyCount(t *testing.T) {
	got := Daily()
	if len(got) != 25 {
		t.Fatalf("expected 25 slots, got %d", len(got))
	}
}

func TestDailyBounds(t *testing.T) {
	got := Daily()
	if got[0] != "08:00" {
		t.Errorf("expected first slot 08:00, got %s", got[0])
	}
	if got[len(got)-2] != "19:30" {
		t.Errorf("expected penultimate slot 19:30, got %s", got[len(got)-2])
	}
	if got[len(got)-1] != "20:00" {
		t.Errorf("expected last slot 20:00, got %s", got[len(got)-1])
	}
}

func TestDailyOrderedHalfHours(t *testing.T) {
	got := Daily()
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("slots out of order: %s before %s", got[i-1], got[i])
		}
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"08:00", true},
		{"08:30", true},
		{"13:30", true},
		{"19:30", true},
		{"20:00", true},
		{"08:15", false},
		{"07:30", false},
		{"20:30", false},
		{"8:00", false},
		{"0800", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Contains(tt.label); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}
