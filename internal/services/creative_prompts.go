package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
)

// StylePrefs are the optional design preferences from the wizard; all
// fields default to absent.
type StylePrefs struct {
  TargetAudience          string
  AdStyle                 string
  ColorScheme             string
  Typography              string
  AdditionalInstructions  string
}

type CreativePromptGenerator interface {
  // GeneratePrompts turns the brand profile plus style preferences into a
  // creative brief whose FinalPrompt is ready for the image backend. Same
  // parse-or-fallback contract as the analyzer: the bool reports whether
  // the model answer parsed, and an error is returned only for outbound
  // call failures.
  GeneratePrompts(ctx context.Context, profile *types.BrandProfile, prefs StylePrefs) (*types.CreativeBrief, bool, error)
}

type creativePromptGenerator struct {
  log    *logger.Logger
  client OpenAIClient
}

func NewCreativePromptGenerator(log *logger.Logger, client OpenAIClient) CreativePromptGenerator {
  serviceLog := log.With("service", "CreativePromptGenerator")
  return &creativePromptGenerator{log: serviceLog, client: client}
}

const creativePromptSystem = "You are a creative director expert in social media ads. You answer only with valid JSON."

func creativePromptInstruction(profile *types.BrandProfile, prefs StylePrefs) string {
  profileJSON, _ := json.MarshalIndent(profile, "", "  ")
  additional := prefs.AdditionalInstructions
  if additional == "" {
    additional = "None"
  }

  var b strings.Builder
  b.WriteString("You are a creative director at an ads agency. Create 1 static comparison ad with a large header for this brand.\n\n")
  b.WriteString("BRAND INFORMATION:\n")
  b.Write(profileJSON)
  b.WriteString("\n\nDESIGN PREFERENCES:\n")
  b.WriteString("- Target audience: " + prefs.TargetAudience + "\n")
  b.WriteString("- Visual style: " + prefs.AdStyle + "\n")
  b.WriteString("- Color scheme: " + prefs.ColorScheme + "\n")
  b.WriteString("- Typography: " + prefs.Typography + "\n")
  b.WriteString("- Additional instructions: " + additional + "\n\n")
  b.WriteString(`INSTRUCTIONS:
Create a detailed prompt for a generic static ad that:
1. Uses a 1:1 (square) ratio
2. Has a large, impactful header
3. Is visually attractive and persuasive
4. Is aligned with the client preferences
5. Uses the reasons why people buy this kind of product
6. Does NOT use real brand names or specific logos
7. Is completely original and avoids copyright violations

Structure your answer as JSON:
{
  "conceptualIdea": "Conceptual description of the ad",
  "targetEmotions": ["emotion1", "emotion2", "emotion3"],
  "keyMessages": ["message1", "message2", "message3"],
  "visualElements": {
    "header": "Main header text (generic)",
    "subheader": "Subheader text (generic)",
    "callToAction": "Call to action",
    "visualStyle": "Description of the visual style"
  },
  "finalPrompt": "Detailed, complete prompt for the image model describing exactly how the ad must look, including colors, typography, layout, visual elements and text. MUST be fully generic with no real brands."
}

Respond ONLY with the valid JSON.`)
  return b.String()
}

func (cg *creativePromptGenerator) GeneratePrompts(ctx context.Context, profile *types.BrandProfile, prefs StylePrefs) (*types.CreativeBrief, bool, error) {
  cg.log.Info("Generating creative prompts", "brand", profile.BrandInfo.Name)

  raw, err := cg.client.GenerateText(ctx, creativePromptSystem, creativePromptInstruction(profile, prefs), 0.8)
  if err != nil {
    return nil, false, fmt.Errorf("error generating creative prompts: %w", err)
  }

  brief, parsed := parseCreativeBriefOrFallback(raw, profile, prefs)
  if !parsed {
    cg.log.Warn("Creative brief did not parse, using fallback brief", "brand", profile.BrandInfo.Name)
  }
  return brief, parsed, nil
}

func parseCreativeBriefOrFallback(raw string, profile *types.BrandProfile, prefs StylePrefs) (*types.CreativeBrief, bool) {
  var brief types.CreativeBrief
  if err := json.Unmarshal([]byte(extractJSONBody(raw)), &brief); err == nil && brief.FinalPrompt != "" {
    return &brief, true
  }
  return fallbackCreativeBrief(profile, prefs), false
}

func fallbackCreativeBrief(profile *types.BrandProfile, prefs StylePrefs) *types.CreativeBrief {
  brandName := profile.BrandInfo.Name
  return &types.CreativeBrief{
    ConceptualIdea: fmt.Sprintf("Professional ad for %s", brandName),
    TargetEmotions: []string{"trust", "desire", "urgency"},
    KeyMessages: []string{
      "Guaranteed superior quality",
      "Immediate results",
      "Limited offer",
    },
    VisualElements: types.VisualElements{
      Header:       strings.ToUpper(brandName),
      Subheader:    "The solution you were looking for",
      CallToAction: "Buy Now!",
      VisualStyle:  fmt.Sprintf("%s style with %s colors", prefs.AdStyle, prefs.ColorScheme),
    },
    FinalPrompt: fmt.Sprintf(
      "Create a professional 1:1 square social media advertisement. The ad should have a large, bold header text at the top. "+
        "Include an attractive subheader below the main header. The design should be %s style with %s color scheme. "+
        "Include a clear call-to-action button. The overall design should be eye-catching, professional, and persuasive. "+
        "Use high-quality visuals and modern typography. Focus on the product benefits and value proposition without using specific brand names.",
      prefs.AdStyle, prefs.ColorScheme,
    ),
  }
}
