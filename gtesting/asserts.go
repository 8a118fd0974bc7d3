package gtesting

import (
	"testing"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualBool(t *testing.T, name string, got, want bool) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %t; want %t", got, want)
		}
	})
}

func AssertInRangeUint32(t *testing.T, name string, got, wantMin, wantMax uint32) {
	t.Run(name, func(t *testing.T) {
		if got < wantMin || got > wantMax {
			t.Errorf("got %d; want [%d,%d]", got, wantMin, wantMax)
		}
	})
}
