package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"

  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/types"
)

// BrandInput is what the analyzer needs about a product before it has any
// structured knowledge: the name, the site to study and a free-text
// description.
type BrandInput struct {
  BrandName   string
  Website     string
  Description string
}

type BrandAnalyzer interface {
  // AnalyzeWebsite turns the raw product facts into a structured brand
  // profile. The returned bool reports whether the model's answer parsed;
  // when it did not, the profile is the deterministic fallback and no
  // error is raised. An error is returned only when the outbound call
  // itself failed.
  AnalyzeWebsite(ctx context.Context, input BrandInput) (*types.BrandProfile, bool, error)
}

type brandAnalyzer struct {
  log    *logger.Logger
  client OpenAIClient
}

func NewBrandAnalyzer(log *logger.Logger, client OpenAIClient) BrandAnalyzer {
  serviceLog := log.With("service", "BrandAnalyzer")
  return &brandAnalyzer{log: serviceLog, client: client}
}

const brandAnalysisSystem = "You are an expert brand analyst. You answer only with valid, complete JSON."

func brandAnalysisInstruction(input BrandInput) string {
  var b strings.Builder
  b.WriteString("Analyze the website " + input.Website + " and extract comprehensive product and brand data as structured JSON. ")
  b.WriteString("Capture brand identity (name, category, target market), brand personality (tone, voice, values, messaging, positioning), ")
  b.WriteString("visual identity (primary and secondary color hex codes, typography, font style, image style), the product list with key features, ")
  b.WriteString("competitive advantages, a customer profile (demographics, psychographics, pain points, desires) and marketing angles. ")
  b.WriteString("Mark missing data as null.\n\n")
  b.WriteString("ADDITIONAL INFORMATION PROVIDED:\n")
  b.WriteString("- Brand name: " + input.BrandName + "\n")
  b.WriteString("- Description: " + input.Description + "\n\n")
  b.WriteString("REQUIRED JSON STRUCTURE:\n")
  b.WriteString(`{
  "brandInfo": {"name": "", "website": "` + input.Website + `", "description": "", "logo": null, "category": "", "targetMarket": ""},
  "brandPersonality": {"tone": "", "voice": "", "values": [], "messaging": "", "positioning": ""},
  "visualIdentity": {"primaryColors": [], "secondaryColors": [], "typography": "", "fontStyle": "", "imageStyle": ""},
  "products": [{"name": "", "price": null, "description": "", "keyFeatures": [], "category": ""}],
  "competitiveAdvantages": [],
  "customerProfile": {"demographics": "", "psychographics": "", "painPoints": [], "desires": []},
  "marketingAngles": []
}`)
  b.WriteString("\n\nRespond ONLY with the valid and complete JSON, no additional text.")
  return b.String()
}

func (ba *brandAnalyzer) AnalyzeWebsite(ctx context.Context, input BrandInput) (*types.BrandProfile, bool, error) {
  ba.log.Info("Analyzing website", "website", input.Website)

  raw, err := ba.client.GenerateText(ctx, brandAnalysisSystem, brandAnalysisInstruction(input), 0.7)
  if err != nil {
    return nil, false, fmt.Errorf("error analyzing brand: %w", err)
  }

  profile, parsed := parseBrandProfileOrFallback(raw, input)
  if !parsed {
    ba.log.Warn("Brand analysis did not parse, using fallback profile", "brand", input.BrandName)
  }
  return profile, parsed, nil
}

// parseBrandProfileOrFallback never fails: an unparsable model answer is
// replaced by a deterministic profile built from the caller's three input
// fields plus generic placeholders. The pipeline always gets a well-formed
// document to pass downstream, trading analysis quality for availability.
func parseBrandProfileOrFallback(raw string, input BrandInput) (*types.BrandProfile, bool) {
  var profile types.BrandProfile
  if err := json.Unmarshal([]byte(extractJSONBody(raw)), &profile); err == nil {
    return &profile, true
  }
  return fallbackBrandProfile(input), false
}

func fallbackBrandProfile(input BrandInput) *types.BrandProfile {
  return &types.BrandProfile{
    BrandInfo: types.BrandInfo{
      Name:         input.BrandName,
      Website:      input.Website,
      Description:  input.Description,
      Logo:         nil,
      Category:     "General",
      TargetMarket: "General market",
    },
    BrandPersonality: types.BrandPersonality{
      Tone:        "professional",
      Voice:       "trustworthy and expert",
      Values:      []string{"quality", "trust", "innovation"},
      Messaging:   "Quality solutions for your business",
      Positioning: "Leader in its category",
    },
    VisualIdentity: types.VisualIdentity{
      PrimaryColors:   []string{"#007bff", "#6610f2"},
      SecondaryColors: []string{"#28a745", "#ffc107"},
      Typography:      "Modern sans-serif",
      FontStyle:       "modern sans-serif",
      ImageStyle:      "clean and professional",
    },
    Products: []types.BrandProduct{
      {
        Name:        "Main product",
        Price:       nil,
        Description: "High quality product",
        KeyFeatures: []string{"High quality", "Durability", "Elegant design"},
        Category:    "General",
      },
    },
    CompetitiveAdvantages: []string{
      "Superior quality",
      "Exceptional customer service",
      "Constant innovation",
    },
    CustomerProfile: types.CustomerProfile{
      Demographics:   "Adults 25-45 years old",
      Psychographics: "People who value quality",
      PainPoints:     []string{"Lack of time", "Need for efficiency"},
      Desires:        []string{"Simplicity", "Guaranteed results"},
    },
    MarketingAngles: []string{
      "Efficiency and speed",
      "Guaranteed quality",
      "Comprehensive solution",
    },
  }
}

// extractJSONBody tolerates markdown code fences around the model answer.
func extractJSONBody(raw string) string {
  trimmed := strings.TrimSpace(raw)
  if strings.HasPrefix(trimmed, "```") {
    trimmed = strings.TrimPrefix(trimmed, "```json")
    trimmed = strings.TrimPrefix(trimmed, "```")
    if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
      trimmed = trimmed[:idx]
    }
    trimmed = strings.TrimSpace(trimmed)
  }
  return trimmed
}
