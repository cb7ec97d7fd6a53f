package roomid

import (
	"testing"

	"github.com/callout-games/uno-server/internal/randutil"
)

func TestGenerate(t *testing.T) {
	code := Generate()

	if len(code) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(code))
	}
	if !Valid(code) {
		t.Errorf("generated code failed validation: %s", code)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(randutil.New(7)).Generate()
	b := NewGenerator(randutil.New(7)).Generate()

	if a != b {
		t.Errorf("same seed produced different codes: %s vs %s", a, b)
	}
}

func TestGenerateAvoidsAmbiguousCharacters(t *testing.T) {
	gen := NewGenerator(randutil.New(99))
	for i := 0; i < 100; i++ {
		code := gen.Generate()
		for _, ch := range code {
			switch ch {
			case '0', 'O', '1', 'I', 'L':
				t.Errorf("code %s contains ambiguous character %c", code, ch)
			}
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "well formed", code: "ABC234", want: true},
		{name: "too short", code: "ABC23", want: false},
		{name: "too long", code: "ABC2345", want: false},
		{name: "lowercase", code: "abc234", want: false},
		{name: "ambiguous zero", code: "ABC230", want: false},
		{name: "empty", code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.code); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
