package extract

import "testing"

func TestParseCount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
		ok   bool
	}{
		{"plain integer", "12345", 12345, true},
		{"zero is valid", "0", 0, true},
		{"thousands separators", "12,345", 12345, true},
		{"K suffix", "1.5K", 1500, true},
		{"M suffix", "1.2M", 1200000, true},
		{"B suffix", "2B", 2000000000, true},
		{"lowercase suffix", "3.4m", 3400000, true},
		{"japanese man suffix", "1.5万", 15000, true},
		{"japanese oku suffix", "2億", 200000000, true},
		{"full-width digits", "３４", 34, true},
		{"full-width with suffix", "１.２Ｍ", 1200000, true},
		{"surrounding whitespace", "  42 ", 42, true},
		{"non-numeric", "abc", 0, false},
		{"empty", "", 0, false},
		{"negative", "-5", 0, false},
		{"suffix only", "K", 0, false},
		{"double decimal", "1.2.3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCount(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseCount(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFoldWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full-width digits narrow", "３４", "34"},
		{"full-width latin narrows", "ＴｉｋＴｏｋ", "TikTok"},
		{"full-width colon narrows", "いいねの数：42", "いいねの数:42"},
		{"kana survives folding", "34 コメント", "34 コメント"},
		{"corner brackets survive", "「味噌ラーメン」", "「味噌ラーメン」"},
		{"halfwidth kana widens", "ｺﾒﾝﾄ", "コメント"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := foldWidth(tt.in); got != tt.want {
				t.Errorf("foldWidth(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseCountNeverZeroDefaults(t *testing.T) {
	// Malformed input must report absence, not zero.
	for _, in := range []string{"n/a", "--", "1.2.3K", "views"} {
		if got, ok := ParseCount(in); ok {
			t.Errorf("ParseCount(%q) = %d, ok; want absent", in, got)
		}
	}
}
