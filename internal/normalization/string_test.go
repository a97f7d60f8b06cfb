package normalization

import "testing"

func TestParseInputString(t *testing.T) {
	if got := ParseInputString("  JDoe@Example.COM "); got != "jdoe@example.com" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestTrimInputString(t *testing.T) {
	if got := TrimInputString("  Acme Shoes  "); got != "Acme Shoes" {
		t.Fatalf("unexpected result: %q", got)
	}
}
