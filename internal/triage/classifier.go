package triage

import "strings"

// Tier identifies the urgency tier assigned to a message.
type Tier string

const (
	TierCrisis   Tier = "crisis"
	TierElevated Tier = "elevated"
	TierRoutine  Tier = "routine"
)

// Urgency levels per tier. The contact form stores these directly.
const (
	UrgencyCrisis   = 10
	UrgencyElevated = 7
	UrgencyRoutine  = 3
)

// Resource is a support service surfaced alongside a triage result.
type Resource struct {
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Result is the outcome of classifying an inbound message.
type Result struct {
	Tier             Tier       `json:"tier"`
	UrgencyLevel     int        `json:"urgency_level"`
	ShouldEscalate   bool       `json:"should_escalate"`
	MatchedKeyword   string     `json:"matched_keyword,omitempty"`
	SuggestedActions []string   `json:"suggested_actions"`
	Resources        []Resource `json:"resources"`
}

// Classifier assigns an urgency tier to a free-text message. It is an
// interface so the keyword implementation can be replaced by a trained
// classifier without touching callers.
type Classifier interface {
	Classify(message string) Result
}

// KeywordClassifier is a three-tier, first-match-wins keyword classifier.
// Matching is case-insensitive substring containment. Negation is not
// interpreted: "not suicidal" still escalates.
type KeywordClassifier struct {
	crisisKeywords   []string
	elevatedKeywords []string
}

// NewKeywordClassifier creates a classifier with the default keyword sets.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		crisisKeywords: []string{
			"suicide",
			"suicidal",
			"kill myself",
			"end my life",
			"end it all",
			"self harm",
			"self-harm",
			"hurt myself",
			"harming myself",
			"overdose",
			"don't want to live",
			"dont want to live",
			"no reason to live",
			"emergency",
		},
		elevatedKeywords: []string{
			"panic attack",
			"panic",
			"anxiety",
			"anxious",
			"can't cope",
			"cant cope",
			"desperate",
			"crisis",
			"overwhelmed",
			"breaking down",
			"can't sleep",
			"cant sleep",
			"urgent",
		},
	}
}

// Classify assigns a tier to the message. It is a pure function of the
// message text.
func (c *KeywordClassifier) Classify(message string) Result {
	normalized := strings.ToLower(message)

	for _, kw := range c.crisisKeywords {
		if strings.Contains(normalized, kw) {
			return Result{
				Tier:           TierCrisis,
				UrgencyLevel:   UrgencyCrisis,
				ShouldEscalate: true,
				MatchedKeyword: kw,
				SuggestedActions: []string{
					"Contact the client immediately by phone",
					"If there is immediate danger, call 000",
					"Share crisis support line details",
				},
				Resources: crisisResources,
			}
		}
	}

	for _, kw := range c.elevatedKeywords {
		if strings.Contains(normalized, kw) {
			return Result{
				Tier:           TierElevated,
				UrgencyLevel:   UrgencyElevated,
				ShouldEscalate: true,
				MatchedKeyword: kw,
				SuggestedActions: []string{
					"Respond within one business day",
					"Offer the earliest available appointment",
					"Include mental health support line details",
				},
				Resources: elevatedResources,
			}
		}
	}

	return Result{
		Tier:           TierRoutine,
		UrgencyLevel:   UrgencyRoutine,
		ShouldEscalate: false,
		SuggestedActions: []string{
			"Respond within two business days",
			"Share practice information and fees",
		},
		Resources: routineResources,
	}
}

var crisisResources = []Resource{
	{Name: "Emergency Services", Phone: "000", Description: "Immediate danger to life"},
	{Name: "Lifeline", Phone: "13 11 14", URL: "https://www.lifeline.org.au", Description: "24/7 crisis support"},
	{Name: "Suicide Call Back Service", Phone: "1300 659 467", URL: "https://www.suicidecallbackservice.org.au"},
}

var elevatedResources = []Resource{
	{Name: "Beyond Blue", Phone: "1300 22 4636", URL: "https://www.beyondblue.org.au", Description: "Anxiety and depression support"},
	{Name: "Lifeline", Phone: "13 11 14", URL: "https://www.lifeline.org.au", Description: "24/7 crisis support"},
}

var routineResources = []Resource{
	{Name: "Practice information", URL: "https://celiadunsmorecounselling.com.au/services"},
	{Name: "Fees and Medicare rebates", URL: "https://celiadunsmorecounselling.com.au/fees"},
}
