package util

import (
	"strings"
	"testing"
)

func TestSnippetCollapsesWhitespaceAndCaps(t *testing.T) {
	in := "Vision-Language-Action\x00 models \n\t for robot   control"
	out := Snippet(in, 100)
	if out != "Vision-Language-Action models for robot control" {
		t.Fatalf("unexpected snippet: %q", out)
	}
	long := strings.Repeat("word ", 100)
	capped := Snippet(long, 20)
	if !strings.HasSuffix(capped, "...") {
		t.Fatalf("expected ellipsis on capped snippet, got %q", capped)
	}
}
