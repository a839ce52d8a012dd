package util

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		"ab\x00cd\x01\x02\n\txy":     "abcd\n\txy",
		"":                           "",
		"  padded  ":                 "padded",
		"line one\r\nline two":       "line one\r\nline two",
		"T\x00itle: VLA\x00 Survey":  "Title: VLA Survey",
		"\x1b[0mescape\x07sequences": "[0mescapesequences",
	}
	for in, want := range cases {
		if got := SanitizeText(in); got != want {
			t.Fatalf("sanitize %q: got %q want %q", in, got, want)
		}
	}
}
