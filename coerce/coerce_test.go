package coerce

import "testing"

func TestInt(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		out  int
	}{
		{"Testing plain number", "123", 123},
		{"Testing thousands separators", "1,234", 1234},
		{"Testing parenthesized value", "(50)", 50},
		{"Testing formula wrapper", "=(123)", 123},
		{"Testing dash placeholder", "-", 0},
		{"Testing N/A placeholder", "N/A", 0},
		{"Testing empty cell", "", 0},
		{"Testing float shaped cell", "410.0", 410},
		{"Testing non breaking space", " 1,024 ", 1024},
		{"Testing garbage", "abc", 0},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := Int(tt.in)
			if res != tt.out {
				t.Errorf("want %d, got %d", tt.out, res)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		out  float64
	}{
		{"Testing plain float", "12.5", 12.5},
		{"Testing percent suffix", "12.5%", 12.5},
		{"Testing thousands separators", "1,234.5", 1234.5},
		{"Testing parenthesized value", "(2.5)", 2.5},
		{"Testing dash placeholder", "-", 0.0},
		{"Testing N/A placeholder", "N/A", 0.0},
		{"Testing empty cell", "", 0.0},
		{"Testing garbage", "sixty", 0.0},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := Float(tt.in)
			if res != tt.out {
				t.Errorf("want %f, got %f", tt.out, res)
			}
		})
	}
}

func TestClean(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		out  string
	}{
		{"Testing trim", "  Warangal  ", "Warangal"},
		{"Testing non breaking space", "Port Blair", "Port Blair"},
		{"Testing numeric formula wrapper", "=(880000)", "880000"},
		{"Testing text formula wrapper stays", "=(abc)", "=(abc)"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			res := Clean(tt.in)
			if res != tt.out {
				t.Errorf("want %s, got %s", tt.out, res)
			}
		})
	}
}
