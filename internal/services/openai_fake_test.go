package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/adgenius/adgenius-backend/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// fakeOpenAI is the test double for the outbound client. GenerateText
// answers from textResponses in call order, repeating the last entry once
// exhausted.
type fakeOpenAI struct {
	textResponses []string
	textErr       error
	textCalls     int

	imageResult     *ImageResult
	imageErr        error
	imageCalls      int
	lastImagePrompt string
	lastImageSize   string
}

func (f *fakeOpenAI) GenerateText(ctx context.Context, system string, user string, temperature float64) (string, error) {
	f.textCalls++
	if f.textErr != nil {
		return "", f.textErr
	}
	if len(f.textResponses) == 0 {
		return "", nil
	}
	idx := f.textCalls - 1
	if idx >= len(f.textResponses) {
		idx = len(f.textResponses) - 1
	}
	return f.textResponses[idx], nil
}

func (f *fakeOpenAI) GenerateImage(ctx context.Context, prompt string, size string, quality string) (*ImageResult, error) {
	f.imageCalls++
	f.lastImagePrompt = prompt
	f.lastImageSize = size
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	if f.imageResult != nil {
		return f.imageResult, nil
	}
	return &ImageResult{
		URL:     "https://images.example.com/ad.png",
		Model:   "dall-e-3",
		Size:    size,
		Quality: quality,
	}, nil
}
