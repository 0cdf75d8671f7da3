package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeCompletionClient struct {
	message    string
	err        error
	lastPrompt string
}

func (f *fakeCompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestGuidanceService_ReturnsCompletion(t *testing.T) {
	client := &fakeCompletionClient{message: "## Equipment required\n\nNone."}
	svc := NewGuidanceService(client, quietLogger())

	got := svc.GuidanceFor(context.Background(), "Push-Up")
	assert.Equal(t, "## Equipment required\n\nNone.", got)
	assert.True(t, strings.Contains(client.lastPrompt, "Push-Up"))
}

func TestGuidanceService_FallbackOnFailure(t *testing.T) {
	client := &fakeCompletionClient{err: errors.New("upstream timeout")}
	svc := NewGuidanceService(client, quietLogger())

	got := svc.GuidanceFor(context.Background(), "Push-Up")
	assert.Equal(t, GuidanceFallback, got)
}
