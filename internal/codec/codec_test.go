package codec

import "testing"

func TestTransform(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"a":       "a",
		"ab12":    "21ba",
		"k3!x":    "x!3k",
		"héllo":   "olléh",
		"ab\xffc": "ab\xffc",
	}
	for in, want := range cases {
		if got := Transform(in); got != want {
			t.Fatalf("Transform(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, p := range []string{"", "x", "ab12", "!@#$%^&*()_+[]{}|;:,.<>?", "päss wörd", "ab\xffc", "\x80\xc3"} {
		if got := Decode(Encode(p)); got != p {
			t.Fatalf("round trip of %q gave %q", p, got)
		}
		if Encode(p) != Decode(p) {
			t.Fatalf("encode and decode differ for %q", p)
		}
	}
}
