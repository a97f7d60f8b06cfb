package services

import (
	"strings"
	"testing"
)

func TestReplaceRestrictedTerms_SwapsKnownBrands(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"nike sneakers on a court", "athletic brand sneakers on a court"},
		{"a new iphone on a desk", "a new smartphone on a desk"},
		{"samsung galaxy in hand", "mobile device mobile device in hand"},
		{"retro air force shoes", "retro classic sneakers shoes"},
		{"air max on a runner", "sport shoes on a runner"},
		{"a starbucks cup", "a coffee shop cup"},
	}
	for _, tc := range cases {
		got := ReplaceRestrictedTerms(tc.in)
		if got != tc.want {
			t.Fatalf("ReplaceRestrictedTerms(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReplaceRestrictedTerms_CaseInsensitive(t *testing.T) {
	got := ReplaceRestrictedTerms("NIKE and Nike and nIkE")
	if got != "athletic brand and athletic brand and athletic brand" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestReplaceRestrictedTerms_RespectsWordBoundaries(t *testing.T) {
	in := "a pixelated snapple bottle"
	if got := ReplaceRestrictedTerms(in); got != in {
		t.Fatalf("expected %q untouched, got %q", in, got)
	}
}

func TestCleanPromptForImage_WrapsWithSafetyText(t *testing.T) {
	got := CleanPromptForImage("nike shoes in motion")
	if !strings.HasPrefix(got, safePromptPrefix) {
		t.Fatalf("missing safety prefix: %q", got)
	}
	if !strings.HasSuffix(got, safePromptSuffix) {
		t.Fatalf("missing safety suffix: %q", got)
	}
	if strings.Contains(strings.ToLower(got), "nike") {
		t.Fatalf("restricted term survived: %q", got)
	}
	if !strings.Contains(got, "athletic brand shoes in motion") {
		t.Fatalf("missing substituted body: %q", got)
	}
}

func TestCleanPromptForImage_Idempotent(t *testing.T) {
	once := CleanPromptForImage("red sneakers on a track")
	twice := CleanPromptForImage(once)
	if once != twice {
		t.Fatalf("second pass changed the prompt:\n once: %q\ntwice: %q", once, twice)
	}
}

func TestCleanPromptForImage_SanitizesPreWrappedInput(t *testing.T) {
	// Input already carrying the safety wrapping must still have its body
	// filtered; the wrapping alone is not proof of a clean prompt.
	got := CleanPromptForImage(safePromptPrefix + "nike shoes in motion" + safePromptSuffix)
	if strings.Contains(strings.ToLower(got), "nike") {
		t.Fatalf("restricted term survived: %q", got)
	}
	if !strings.Contains(got, "athletic brand shoes in motion") {
		t.Fatalf("missing substituted body: %q", got)
	}
	if !strings.HasPrefix(got, safePromptPrefix) || !strings.HasSuffix(got, safePromptSuffix) {
		t.Fatalf("wrapping lost: %q", got)
	}
}

func TestCleanPromptForImage_TruncatesLast(t *testing.T) {
	long := strings.Repeat("vivid colors ", 200)
	got := CleanPromptForImage(long)
	if len(got) != maxImagePromptLength {
		t.Fatalf("expected length %d, got %d", maxImagePromptLength, len(got))
	}
	if !strings.HasPrefix(got, safePromptPrefix) {
		t.Fatalf("truncation removed the prefix: %q", got[:80])
	}
}

func TestCleanPromptForImage_ShortPromptNotTruncated(t *testing.T) {
	got := CleanPromptForImage("a red bottle")
	if len(got) > maxImagePromptLength {
		t.Fatalf("length %d exceeds limit", len(got))
	}
	if !strings.Contains(got, "a red bottle") {
		t.Fatalf("original text lost: %q", got)
	}
}
