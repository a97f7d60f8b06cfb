package services

import (
  "regexp"
  "strings"
)

// The image backend enforces content policy server-side and rejects
// prompts referencing protected marks. This is a best-effort client-side
// filter that lowers the rejection rate; it is not a guarantee and the
// term list is not meant to be complete.

const maxImagePromptLength = 1000

const (
  safePromptPrefix = "Create a professional advertising image for a generic product. "
  safePromptSuffix = ". Avoid any real brand names, logos, or copyrighted elements. Make it original and creative."
)

type restrictedTerm struct {
  term       string
  substitute string
  re         *regexp.Regexp
}

func newRestrictedTerm(term, substitute string) restrictedTerm {
  return restrictedTerm{
    term:       term,
    substitute: substitute,
    re:         regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`),
  }
}

const genericSubstitute = "premium product"

var restrictedTerms = []restrictedTerm{
  // Well-known brands
  newRestrictedTerm("nike", "athletic brand"),
  newRestrictedTerm("adidas", "athletic brand"),
  newRestrictedTerm("apple", genericSubstitute),
  newRestrictedTerm("samsung", "mobile device"),
  newRestrictedTerm("coca-cola", genericSubstitute),
  newRestrictedTerm("pepsi", genericSubstitute),
  newRestrictedTerm("mcdonalds", genericSubstitute),
  newRestrictedTerm("burger king", genericSubstitute),
  newRestrictedTerm("starbucks", "coffee shop"),
  newRestrictedTerm("amazon", genericSubstitute),
  newRestrictedTerm("google", genericSubstitute),
  newRestrictedTerm("microsoft", genericSubstitute),
  newRestrictedTerm("facebook", genericSubstitute),
  newRestrictedTerm("instagram", genericSubstitute),
  newRestrictedTerm("twitter", genericSubstitute),
  newRestrictedTerm("tiktok", genericSubstitute),
  newRestrictedTerm("youtube", genericSubstitute),
  newRestrictedTerm("spotify", genericSubstitute),
  newRestrictedTerm("netflix", genericSubstitute),
  newRestrictedTerm("disney", genericSubstitute),
  newRestrictedTerm("marvel", genericSubstitute),
  newRestrictedTerm("sony", genericSubstitute),
  newRestrictedTerm("playstation", genericSubstitute),
  newRestrictedTerm("xbox", genericSubstitute),
  newRestrictedTerm("nintendo", genericSubstitute),
  // Product lines
  newRestrictedTerm("iphone", "smartphone"),
  newRestrictedTerm("ipad", "tablet"),
  newRestrictedTerm("macbook", "laptop"),
  newRestrictedTerm("airpods", "wireless earbuds"),
  newRestrictedTerm("galaxy", "mobile device"),
  newRestrictedTerm("pixel", "mobile device"),
  newRestrictedTerm("air force", "classic sneakers"),
  newRestrictedTerm("air max", "sport shoes"),
  newRestrictedTerm("jordan", "classic sneakers"),
  newRestrictedTerm("yeezys", "designer sneakers"),
  newRestrictedTerm("converse", "canvas sneakers"),
  // Slogans and trademarks
  newRestrictedTerm("swoosh", genericSubstitute),
  newRestrictedTerm("just do it", genericSubstitute),
  newRestrictedTerm("think different", genericSubstitute),
  newRestrictedTerm("i'm lovin' it", genericSubstitute),
}

// CleanPromptForImage rewrites an image prompt so it is safe to submit to
// the image backend: restricted terms are swapped for generic category
// substitutes, a fixed safety preamble wraps the text, and the result is
// truncated to the backend's prompt limit. Truncation happens last and may
// cut into the wrapping text; that is an accepted lossy edge case.
// Substitution always runs, even on input that already carries the
// wrapping text, so a pre-wrapped prompt cannot smuggle restricted terms
// past the filter; the function stays idempotent up to the truncation
// boundary because a clean pass leaves sanitized text untouched.
func CleanPromptForImage(prompt string) string {
  cleaned := ReplaceRestrictedTerms(prompt)
  if strings.HasPrefix(cleaned, safePromptPrefix) && strings.HasSuffix(cleaned, safePromptSuffix) {
    return truncatePrompt(cleaned)
  }
  return truncatePrompt(safePromptPrefix + cleaned + safePromptSuffix)
}

// ReplaceRestrictedTerms swaps every restricted brand, product-line and
// slogan occurrence (case-insensitive, word-boundary) for its category
// substitute.
func ReplaceRestrictedTerms(prompt string) string {
  cleaned := prompt
  for _, rt := range restrictedTerms {
    cleaned = rt.re.ReplaceAllString(cleaned, rt.substitute)
  }
  return cleaned
}

func truncatePrompt(prompt string) string {
  if len(prompt) > maxImagePromptLength {
    return prompt[:maxImagePromptLength]
  }
  return prompt
}
