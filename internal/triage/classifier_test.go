package triage

import "testing"

func TestClassify_Crisis(t *testing.T) {
	c := NewKeywordClassifier()

	for _, msg := range []string{
		"I want to kill myself",
		"I've been thinking about suicide",
		"this is an EMERGENCY",
		"I keep hurting myself",
	} {
		result := c.Classify(msg)
		if result.Tier != TierCrisis {
			t.Errorf("Classify(%q): expected crisis tier, got %s", msg, result.Tier)
		}
		if result.UrgencyLevel != UrgencyCrisis {
			t.Errorf("Classify(%q): expected urgency %d, got %d", msg, UrgencyCrisis, result.UrgencyLevel)
		}
		if !result.ShouldEscalate {
			t.Errorf("Classify(%q): expected escalation", msg)
		}
		if len(result.Resources) == 0 {
			t.Errorf("Classify(%q): expected crisis resources", msg)
		}
	}
}

func TestClassify_Elevated(t *testing.T) {
	c := NewKeywordClassifier()

	result := c.Classify("I had a panic attack at work and I'm desperate for help")
	if result.Tier != TierElevated {
		t.Fatalf("expected elevated tier, got %s", result.Tier)
	}
	if result.UrgencyLevel != UrgencyElevated {
		t.Errorf("expected urgency %d, got %d", UrgencyElevated, result.UrgencyLevel)
	}
	if !result.ShouldEscalate {
		t.Error("expected escalation")
	}
}

func TestClassify_Routine(t *testing.T) {
	c := NewKeywordClassifier()

	result := c.Classify("What are your fees?")
	if result.Tier != TierRoutine {
		t.Fatalf("expected routine tier, got %s", result.Tier)
	}
	if result.UrgencyLevel != UrgencyRoutine {
		t.Errorf("expected urgency %d, got %d", UrgencyRoutine, result.UrgencyLevel)
	}
	if result.ShouldEscalate {
		t.Error("expected no escalation")
	}
}

func TestClassify_CrisisWinsOverElevated(t *testing.T) {
	c := NewKeywordClassifier()

	// Contains both "anxiety" (elevated) and "suicide" (crisis); crisis
	// is checked first and wins.
	result := c.Classify("my anxiety is so bad I think about suicide")
	if result.Tier != TierCrisis {
		t.Fatalf("expected crisis tier, got %s", result.Tier)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewKeywordClassifier()

	msg := "I can't cope anymore"
	first := c.Classify(msg)
	for i := 0; i < 10; i++ {
		got := c.Classify(msg)
		if got.Tier != first.Tier || got.UrgencyLevel != first.UrgencyLevel || got.ShouldEscalate != first.ShouldEscalate {
			t.Fatalf("classification not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestClassify_NegationStillEscalates(t *testing.T) {
	c := NewKeywordClassifier()

	// Negated crisis language deliberately still escalates.
	result := c.Classify("I'm not suicidal but I need to talk to someone")
	if result.Tier != TierCrisis {
		t.Fatalf("expected crisis tier, got %s", result.Tier)
	}
}
