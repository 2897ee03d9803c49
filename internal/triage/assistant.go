package triage

import (
	"context"

	"github.com/google/uuid"

	"github.com/celiadunsmore/counselling-platform/internal/observability/metrics"
	"github.com/celiadunsmore/counselling-platform/pkg/logging"
)

const assistantSystemPrompt = "You are the booking assistant for Celia Dunsmore Counselling, a solo counselling practice in Brunswick, Melbourne. Be warm and concise. You may describe services, fees, Medicare rebates, locations, and how to book. Never give clinical or medical advice. If a message suggests the person is in crisis, gently direct them to Lifeline (13 11 14) or emergency services (000) and encourage them to phone the practice directly."

// Reply is the assistant's answer to a chat message.
type Reply struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Insights  Result `json:"insights"`
}

// Assistant combines the triage classifier with an optional LLM-drafted
// reply. Classification is always computed from the raw user message;
// the model's output never changes the urgency tier.
type Assistant struct {
	classifier Classifier
	llm        LLMClient
	history    *HistoryStore
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// NewAssistant creates the assistant service. llm and history may be nil;
// without an LLM the assistant answers with the tier's canned response.
func NewAssistant(classifier Classifier, llm LLMClient, history *HistoryStore, m *metrics.Metrics, logger *logging.Logger) *Assistant {
	if classifier == nil {
		panic("triage: classifier cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Assistant{
		classifier: classifier,
		llm:        llm,
		history:    history,
		metrics:    m,
		logger:     logger,
	}
}

// Classify exposes the underlying classifier for callers that only need
// triage (the contact form).
func (a *Assistant) Classify(message string) Result {
	return a.classifier.Classify(message)
}

// Respond classifies the message and drafts a reply.
func (a *Assistant) Respond(ctx context.Context, sessionID, message string) (*Reply, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	insights := a.classifier.Classify(message)
	if insights.ShouldEscalate {
		a.logger.Warn("assistant message escalated",
			"tier", insights.Tier,
			"keyword", insights.MatchedKeyword,
			"session_id", sessionID,
		)
	}

	reply := &Reply{
		SessionID: sessionID,
		Provider:  "none",
		Insights:  insights,
	}

	// Crisis messages always get the canned crisis response; a drafted
	// reply must not soften or replace the emergency guidance.
	if insights.Tier == TierCrisis || a.llm == nil {
		reply.Message = cannedReply(insights.Tier)
		a.metrics.ObserveAssistantRequest(reply.Provider, "ok")
		return reply, nil
	}

	transcript := a.loadHistory(ctx, sessionID)
	transcript = append(transcript, ChatMessage{Role: ChatRoleUser, Content: message})

	resp, err := a.llm.Complete(ctx, LLMRequest{
		System:      []string{assistantSystemPrompt},
		Messages:    transcript,
		MaxTokens:   400,
		Temperature: 0.4,
	})
	if err != nil {
		a.logger.Error("assistant completion failed, using canned reply", "error", err, "session_id", sessionID)
		reply.Message = cannedReply(insights.Tier)
		a.metrics.ObserveAssistantRequest("llm", "error")
		return reply, nil
	}

	reply.Message = resp.Text
	reply.Provider = "llm"
	a.metrics.ObserveAssistantRequest(reply.Provider, "ok")

	transcript = append(transcript, ChatMessage{Role: ChatRoleAssistant, Content: resp.Text})
	a.saveHistory(ctx, sessionID, transcript)

	return reply, nil
}

func (a *Assistant) loadHistory(ctx context.Context, sessionID string) []ChatMessage {
	if a.history == nil {
		return nil
	}
	transcript, err := a.history.Load(ctx, sessionID)
	if err != nil {
		a.logger.Error("failed to load chat history", "error", err, "session_id", sessionID)
		return nil
	}
	return transcript
}

func (a *Assistant) saveHistory(ctx context.Context, sessionID string, transcript []ChatMessage) {
	if a.history == nil {
		return
	}
	if err := a.history.Save(ctx, sessionID, transcript); err != nil {
		a.logger.Error("failed to save chat history", "error", err, "session_id", sessionID)
	}
}

func cannedReply(tier Tier) string {
	switch tier {
	case TierCrisis:
		return "It sounds like you may be going through something serious right now. If you are in immediate danger, please call 000. You can also reach Lifeline any time on 13 11 14, or the Suicide Call Back Service on 1300 659 467. Please also consider phoning the practice directly on +61 438 593 071."
	case TierElevated:
		return "Thank you for reaching out. That sounds really difficult. Celia aims to respond to messages like yours within one business day. If you need support sooner, Beyond Blue is available on 1300 22 4636 and Lifeline on 13 11 14."
	default:
		return "Thanks for your message. You can find details about services, fees and Medicare rebates on the website, or book an appointment through the booking page. Celia will get back to you within two business days."
	}
}
