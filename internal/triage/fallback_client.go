package triage

import (
	"context"

	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

// FallbackLLMClient retries a failed completion on a second provider,
// so a single vendor outage does not take the chat assistant down.
type FallbackLLMClient struct {
	primary  LLMClient
	fallback LLMClient
	logger   *logging.Logger
}

// NewFallbackLLMClient wraps primary with fallback. A nil fallback
// degrades to plain pass-through.
func NewFallbackLLMClient(primary, fallback LLMClient, logger *logging.Logger) *FallbackLLMClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackLLMClient{
		primary:  primary,
		fallback: fallback,
		logger:   logger.Component("llm-fallback"),
	}
}

func (c *FallbackLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	resp, primaryErr := c.primary.Complete(ctx, req)
	if primaryErr == nil {
		return resp, nil
	}
	if c.fallback == nil {
		return LLMResponse{}, primaryErr
	}

	c.logger.Warn("primary LLM failed, trying fallback", "error", primaryErr)
	resp, err := c.fallback.Complete(ctx, req)
	if err != nil {
		c.logger.Error("both LLM providers failed", "primary_error", primaryErr, "fallback_error", err)
		return LLMResponse{}, err
	}
	c.logger.Info("fallback LLM answered after primary failure")
	return resp, nil
}
