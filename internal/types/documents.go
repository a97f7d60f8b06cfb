package types

import (
  "time"
)

// AdFormData is the wizard payload submitted to POST /api/ads/generate.
// Only ProductName, Website, Description and ProductID are required; the
// style preferences default to absent.
type AdFormData struct {
  ProductName             string      `json:"productName"`
  Website                 string      `json:"website"`
  Description             string      `json:"description"`
  ProductID               string      `json:"productId"`
  TargetAudience          string      `json:"targetAudience,omitempty"`
  AdStyle                 string      `json:"adStyle,omitempty"`
  ColorScheme             string      `json:"colorScheme,omitempty"`
  Typography              string      `json:"typography,omitempty"`
  ImageSize               string      `json:"imageSize,omitempty"`
  AdditionalInstructions  string      `json:"additionalInstructions,omitempty"`
}

// BrandProfile is the structured output of the brand analysis step.
type BrandProfile struct {
  BrandInfo               BrandInfo           `json:"brandInfo"`
  BrandPersonality        BrandPersonality    `json:"brandPersonality"`
  VisualIdentity          VisualIdentity      `json:"visualIdentity"`
  Products                []BrandProduct      `json:"products"`
  CompetitiveAdvantages   []string            `json:"competitiveAdvantages"`
  CustomerProfile         CustomerProfile     `json:"customerProfile"`
  MarketingAngles         []string            `json:"marketingAngles"`
}

type BrandInfo struct {
  Name          string      `json:"name"`
  Website       string      `json:"website"`
  Description   string      `json:"description"`
  Logo          *string     `json:"logo"`
  Category      string      `json:"category"`
  TargetMarket  string      `json:"targetMarket"`
}

type BrandPersonality struct {
  Tone          string      `json:"tone"`
  Voice         string      `json:"voice"`
  Values        []string    `json:"values"`
  Messaging     string      `json:"messaging"`
  Positioning   string      `json:"positioning"`
}

type VisualIdentity struct {
  PrimaryColors     []string    `json:"primaryColors"`
  SecondaryColors   []string    `json:"secondaryColors"`
  Typography        string      `json:"typography"`
  FontStyle         string      `json:"fontStyle"`
  ImageStyle        string      `json:"imageStyle"`
}

type BrandProduct struct {
  Name          string      `json:"name"`
  Price         *string     `json:"price"`
  Description   string      `json:"description"`
  KeyFeatures   []string    `json:"keyFeatures"`
  Category      string      `json:"category"`
}

type CustomerProfile struct {
  Demographics    string      `json:"demographics"`
  Psychographics  string      `json:"psychographics"`
  PainPoints      []string    `json:"painPoints"`
  Desires         []string    `json:"desires"`
}

// CreativeBrief is the structured output of the creative prompt step.
// FinalPrompt is the natural-language prompt handed to the image backend
// after sanitization.
type CreativeBrief struct {
  ConceptualIdea  string          `json:"conceptualIdea"`
  TargetEmotions  []string        `json:"targetEmotions"`
  KeyMessages     []string        `json:"keyMessages"`
  VisualElements  VisualElements  `json:"visualElements"`
  FinalPrompt     string          `json:"finalPrompt"`
}

type VisualElements struct {
  Header        string      `json:"header"`
  Subheader     string      `json:"subheader"`
  CallToAction  string      `json:"callToAction"`
  VisualStyle   string      `json:"visualStyle"`
}

// AdImage bundles one image-generation result with its metadata.
type AdImage struct {
  URL             string      `json:"url"`
  Size            string      `json:"size"`
  Prompt          string      `json:"prompt"`
  OriginalPrompt  string      `json:"originalPrompt"`
  Model           string      `json:"model"`
  Quality         string      `json:"quality"`
  CreatedAt       time.Time   `json:"createdAt"`
}
