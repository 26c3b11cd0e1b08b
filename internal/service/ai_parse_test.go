package service

import (
	"strings"
	"testing"
)

func TestParseInsightPayloadStructured(t *testing.T) {
	t.Parallel()

	raw := "Here is my analysis:\n```json\n{\"content\": \"Exercise strongly correlates with better mood.\", \"factors\": [{\"factor\": \"exercise\", \"correlation\": 0.7}], \"confidence\": 0.85}\n```"

	payload, parsed := parseInsightPayload(raw)
	if !parsed {
		t.Fatal("expected structured parse to succeed")
	}
	if payload.Content != "Exercise strongly correlates with better mood." {
		t.Fatalf("unexpected content: %s", payload.Content)
	}
	if payload.Confidence != 0.85 {
		t.Fatalf("unexpected confidence: %f", payload.Confidence)
	}
	factors, ok := payload.Factors.([]any)
	if !ok || len(factors) != 1 {
		t.Fatalf("unexpected factors: %#v", payload.Factors)
	}
}

func TestParseInsightPayloadMissingKeys(t *testing.T) {
	t.Parallel()

	payload, parsed := parseInsightPayload(`{"something_else": true}`)
	if !parsed {
		t.Fatal("valid JSON without expected keys still counts as parsed")
	}
	if payload.Confidence != defaultConfidenceScore {
		t.Fatalf("expected default confidence, got %f", payload.Confidence)
	}
	if payload.Content == "" {
		t.Fatal("content must fall back to the raw text")
	}
}

func TestParseInsightPayloadConfidenceClamped(t *testing.T) {
	t.Parallel()

	payload, _ := parseInsightPayload(`{"content": "x", "confidence": 3.5}`)
	if payload.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %f", payload.Confidence)
	}

	payload, _ = parseInsightPayload(`{"content": "x", "confidence": -0.3}`)
	if payload.Confidence != 0 {
		t.Fatalf("expected confidence clamped to 0, got %f", payload.Confidence)
	}
}

func TestParseInsightPayloadNoJSON(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", 1200)
	payload, parsed := parseInsightPayload(text)
	if parsed {
		t.Fatal("expected parse to report fallback")
	}
	if len([]rune(payload.Content)) != maxInsightFallbackRunes {
		t.Fatalf("expected content truncated to %d runes, got %d", maxInsightFallbackRunes, len([]rune(payload.Content)))
	}
	if payload.Confidence != defaultConfidenceScore {
		t.Fatalf("unexpected confidence: %f", payload.Confidence)
	}
}

func TestParseInsightPayloadBrokenJSON(t *testing.T) {
	t.Parallel()

	payload, parsed := parseInsightPayload(`{"content": "unterminated` + "}")
	if parsed {
		t.Fatal("expected parse to report fallback")
	}
	if !strings.HasPrefix(payload.Content, unstructuredInsightPrefix) {
		t.Fatalf("expected unstructured prefix, got %s", payload.Content)
	}
}

func TestParseRecommendationPayloadStructured(t *testing.T) {
	t.Parallel()

	raw := `{"activity_name": "Nature walk", "description": "Take a 30 minute walk.", "duration_minutes": 30, "expected_benefit": "Mood improvement"}`
	payload, parsed := parseRecommendationPayload(raw)
	if !parsed {
		t.Fatal("expected structured parse to succeed")
	}
	if payload.ActivityName != "Nature walk" || payload.DurationMinutes != 30 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestParseRecommendationPayloadMissingKeyFallsBack(t *testing.T) {
	t.Parallel()

	// 缺 expected_benefit：整体按解析失败处理
	raw := `{"activity_name": "Nature walk", "description": "Take a walk.", "duration_minutes": 30}`
	payload, parsed := parseRecommendationPayload(raw)
	if parsed {
		t.Fatal("expected fallback when a required key is missing")
	}
	if payload.ActivityName != fallbackActivityName {
		t.Fatalf("unexpected activity name: %s", payload.ActivityName)
	}
	if payload.DurationMinutes != fallbackActivityDuration {
		t.Fatalf("unexpected duration: %d", payload.DurationMinutes)
	}
}

func TestParseRecommendationPayloadPlainText(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("b", 150)
	payload, parsed := parseRecommendationPayload(text)
	if parsed {
		t.Fatal("expected fallback for plain text")
	}
	if len([]rune(payload.Description)) != maxRecommendationRawRunes {
		t.Fatalf("expected description truncated to %d runes, got %d", maxRecommendationRawRunes, len([]rune(payload.Description)))
	}
	if payload.ExpectedBenefit != fallbackActivityBenefit {
		t.Fatalf("unexpected benefit: %s", payload.ExpectedBenefit)
	}
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	if _, found := extractJSONObject("no braces here"); found {
		t.Fatal("expected no object")
	}
	if _, found := extractJSONObject("} inverted {"); found {
		t.Fatal("expected no object for inverted braces")
	}

	got, found := extractJSONObject("prefix {\"a\": 1} suffix")
	if !found || got != "{\"a\": 1}" {
		t.Fatalf("unexpected extraction: %q found=%v", got, found)
	}
}
