package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false},
		{5, 5, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		name        string
		val, lo, hi float64
		expected    float64
	}{
		{"inside", 0.3, 0, 1, 0.3},
		{"below", -2, 0, 1, 0},
		{"above", 7, 0, 1, 1},
		{"on edge", 1, 0, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
				t.Errorf("ClampF() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d, expected 3", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp(-1, 0, 3) = %d, expected 0", got)
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{3.5, 1},
		{-0.01, -1},
		{0, 0},
	}
	for _, tc := range tests {
		if got := Sign(tc.in); got != tc.expected {
			t.Errorf("Sign(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestCopySign(t *testing.T) {
	tests := []struct {
		mag, sign, expected float64
	}{
		{2, -1, -2},
		{-2, 1, 2},
		{-2, 0, 2},
		{0.5, -0.1, -0.5},
	}
	for _, tc := range tests {
		if got := CopySign(tc.mag, tc.sign); got != tc.expected {
			t.Errorf("CopySign(%v, %v) = %v, expected %v", tc.mag, tc.sign, got, tc.expected)
		}
	}
}

func TestPlayStateHelpers(t *testing.T) {
	for _, s := range []PlayState{StateWon, StateLost, StateP1Won, StateP2Won} {
		if !s.Terminal() {
			t.Errorf("%v.Terminal() = false, expected true", s)
		}
		if s.Resumable() {
			t.Errorf("%v.Resumable() = true, expected false", s)
		}
	}
	for _, s := range []PlayState{StateReady, StatePlaying} {
		if !s.Resumable() {
			t.Errorf("%v.Resumable() = false, expected true", s)
		}
	}
	if StateInitializing.Resumable() || StateInitializing.Terminal() {
		t.Error("initializing should be neither resumable nor terminal")
	}
	if got := PlayState(42).String(); got != "state(42)" {
		t.Errorf("String() = %q, expected %q", got, "state(42)")
	}
}

func TestMessageIDs(t *testing.T) {
	if MessageNone != -1 || MessageReady != 0 || MessageGameOver != 1 ||
		MessageWinnerP1 != 2 || MessageWinnerP2 != 3 || MessageDigit0 != 4 {
		t.Fatal("message ids changed")
	}
	if got := DigitMessage(7); got != 11 {
		t.Errorf("DigitMessage(7) = %d, expected 11", got)
	}
	if got := DigitMessage(12).Text(); got != "2" {
		t.Errorf("DigitMessage(12).Text() = %q, expected %q", got, "2")
	}
	if got := MessageGameOver.Text(); got != "GAME OVER" {
		t.Errorf("Text() = %q, expected %q", got, "GAME OVER")
	}
	if got := MessageNone.Text(); got != "" {
		t.Errorf("Text() = %q, expected empty", got)
	}
}
