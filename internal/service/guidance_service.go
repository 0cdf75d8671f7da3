package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// GuidanceFallback is returned whenever the completion endpoint fails.
// Guidance text and error text share one display slot, so callers always
// get something renderable.
const GuidanceFallback = "Failed to generate AI guidance. Please try again later."

// guidancePromptTemplate asks for a structured markdown answer with the
// fixed section headings the detail screen renders.
const guidancePromptTemplate = `You are a fitness coach.
You are given an exercise, provide clear instructions on how to perform the exercise. Include if any equipment is required.
Explain the benefits of the exercise and any tips for beginners.

The exercise name is: %s

Keep it short and concise, use markdown formatting.

Use the following format:

## Equipment required

## Instructions

## Benefits

### Tips

### Variations

### Safety

Keep spacing between the headings and the content.

Always use headings and subheadings.`

// CompletionClient is the one-shot completion boundary the guidance
// service talks to.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GuidanceService produces coaching guidance for an exercise.
type GuidanceService interface {
	// GuidanceFor returns markdown guidance for the named exercise, or the
	// fixed fallback message on any failure. It never returns an error;
	// upstream failures are logged and degraded.
	GuidanceFor(ctx context.Context, exerciseName string) string
}

type guidanceService struct {
	client CompletionClient
	logger *logrus.Entry
}

// NewGuidanceService creates a guidance service over the given completion
// client.
func NewGuidanceService(client CompletionClient, logger *logrus.Logger) GuidanceService {
	return &guidanceService{
		client: client,
		logger: logger.WithField("component", "guidance"),
	}
}

func (s *guidanceService) GuidanceFor(ctx context.Context, exerciseName string) string {
	prompt := fmt.Sprintf(guidancePromptTemplate, exerciseName)

	message, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.WithError(err).WithField("exercise", exerciseName).
			Error("failed to generate guidance")
		return GuidanceFallback
	}
	return message
}
