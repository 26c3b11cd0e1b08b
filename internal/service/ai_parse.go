package service

import (
	"encoding/json"
	"strings"
)

const (
	defaultConfidenceScore     = 0.5
	maxInsightFallbackRunes    = 1000
	maxUnstructuredErrorRunes  = 500
	maxRecommendationRawRunes  = 100
	fallbackActivityName       = "Recommended Activity"
	fallbackActivityText       = "Take some time for self-care"
	fallbackActivityDuration   = 30
	fallbackActivityBenefit    = "Improved wellbeing"
	unstructuredInsightPrefix  = "Unable to generate structured insights. "
)

// insightPayload 是洞察解析结果；Factors 可能是模型给的列表或字典
type insightPayload struct {
	Content    string
	Factors    any
	Confidence float64
}

// recommendationPayload 是推荐解析结果，四个字段缺一不可
type recommendationPayload struct {
	ActivityName    string
	Description     string
	DurationMinutes int
	ExpectedBenefit string
}

// extractJSONObject 截取首个 { 到最后一个 } 之间的子串。
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// parseInsightPayload 宽容解析模型输出：永不报错，只降级。
// 解析成功但缺键时填默认值；完全解析失败时回退到截断原文 + 默认置信度。
func parseInsightPayload(raw string) (insightPayload, bool) {
	text := strings.TrimSpace(raw)

	jsonStr, found := extractJSONObject(text)
	if !found {
		return insightPayload{
			Content:    truncateRunes(text, maxInsightFallbackRunes),
			Factors:    map[string]any{},
			Confidence: defaultConfidenceScore,
		}, false
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		return insightPayload{
			Content:    unstructuredInsightPrefix + truncateRunes(text, maxUnstructuredErrorRunes),
			Factors:    map[string]any{},
			Confidence: defaultConfidenceScore,
		}, false
	}

	payload := insightPayload{
		Content:    text,
		Factors:    map[string]any{},
		Confidence: defaultConfidenceScore,
	}
	if content, ok := decoded["content"].(string); ok && strings.TrimSpace(content) != "" {
		payload.Content = content
	}
	if factors, ok := decoded["factors"]; ok && factors != nil {
		payload.Factors = factors
	}
	if confidence, ok := asFloat(decoded["confidence"]); ok {
		payload.Confidence = clampConfidence(confidence)
	}
	return payload, true
}

// parseRecommendationPayload 严格解析推荐输出：四个必需键缺任何一个均按解析失败处理，
// 回退到固定的通用推荐。
func parseRecommendationPayload(raw string) (recommendationPayload, bool) {
	text := strings.TrimSpace(raw)
	fallback := recommendationPayload{
		ActivityName:    fallbackActivityName,
		Description:     fallbackActivityText,
		DurationMinutes: fallbackActivityDuration,
		ExpectedBenefit: fallbackActivityBenefit,
	}
	if text != "" {
		fallback.Description = truncateRunes(text, maxRecommendationRawRunes)
	}

	jsonStr, found := extractJSONObject(text)
	if !found {
		return fallback, false
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &decoded); err != nil {
		return fallback, false
	}

	name, okName := decoded["activity_name"].(string)
	description, okDesc := decoded["description"].(string)
	duration, okDuration := asFloat(decoded["duration_minutes"])
	benefit, okBenefit := decoded["expected_benefit"].(string)
	if !okName || !okDesc || !okDuration || !okBenefit {
		return fallback, false
	}

	return recommendationPayload{
		ActivityName:    name,
		Description:     description,
		DurationMinutes: int(duration),
		ExpectedBenefit: benefit,
	}, true
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func clampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func truncateRunes(input string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(input)
	if len(runes) <= limit {
		return input
	}
	return string(runes[:limit])
}
