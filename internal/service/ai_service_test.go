package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/lifelog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeHTTPClient struct {
	handler func(*http.Request) (*http.Response, error)
}

func (f fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if f.handler == nil {
		return nil, errors.New("no handler configured")
	}
	return f.handler(req)
}

func setupAITestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func anthropicTextResponse(t *testing.T, text string) *http.Response {
	t.Helper()
	body := map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"usage": map[string]any{"input_tokens": 120, "output_tokens": 60},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode fake response: %v", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(buf)),
		Header:     make(http.Header),
	}
}

// seedAnalysisLogs 造 numDays 条带运动条目的连续日志
func seedAnalysisLogs(t *testing.T, userID uint, numDays int) []db.DailyLog {
	t.Helper()
	logSvc := NewDailyLogService(db.DB)
	entrySvc := NewEntryService(db.DB)

	logs := make([]db.DailyLog, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := time.Date(2026, 8, 1+i, 0, 0, 0, 0, time.UTC)
		created, err := logSvc.Create(userID, DailyLogInput{Date: date, OverallMood: 5 + i%4})
		if err != nil {
			t.Fatalf("failed to create log: %v", err)
		}
		if _, err := entrySvc.CreateExercise(userID, created.ID, ExerciseEntryInput{
			ExerciseType:    "Running",
			DurationMinutes: 30,
			Intensity:       "moderate",
			Timestamp:       date.Add(7 * time.Hour),
		}); err != nil {
			t.Fatalf("failed to create exercise entry: %v", err)
		}
		logs = append(logs, *created)
	}
	return logs
}

func TestAIServiceAnalyzeInsufficientData(t *testing.T) {
	cleanup := setupAITestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	seedAnalysisLogs(t, user.ID, minLogsForAnalysis-1)

	svc := NewAIService(db.DB, "sk-test", "")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		t.Fatal("no external call expected with insufficient data")
		return nil, nil
	}})

	if _, err := svc.AnalyzeMoodPatterns(context.Background(), user.ID); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAIServiceAnalyzeMoodPatterns(t *testing.T) {
	cleanup := setupAITestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	logs := seedAnalysisLogs(t, user.ID, minLogsForAnalysis)

	svc := NewAIService(db.DB, "sk-test", "")
	svc.SetBaseURL("https://anthropic.test")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Fatalf("unexpected api key header %s", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Fatal("expected anthropic-version header")
		}

		var payload anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Model == "" {
			t.Fatal("expected model to be set")
		}
		if payload.System == "" {
			t.Fatal("expected system prompt to be set")
		}
		if len(payload.Messages) != 1 || payload.Messages[0].Role != "user" {
			t.Fatalf("unexpected messages: %#v", payload.Messages)
		}

		return anthropicTextResponse(t, `{"content": "Running mornings track with higher mood.", "factors": [{"factor": "exercise", "correlation": 0.7}], "confidence": 0.8}`), nil
	}})

	insight, err := svc.AnalyzeMoodPatterns(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("AnalyzeMoodPatterns returned error: %v", err)
	}
	if insight.Content != "Running mornings track with higher mood." {
		t.Fatalf("unexpected content: %s", insight.Content)
	}
	if insight.ConfidenceScore != 0.8 {
		t.Fatalf("unexpected confidence: %f", insight.ConfidenceScore)
	}
	if insight.InsightType != db.InsightMoodCorrelation {
		t.Fatalf("unexpected insight type: %s", insight.InsightType)
	}
	// 洞察挂在最近一条日志上
	latest := logs[len(logs)-1]
	if insight.DailyLogID != latest.ID {
		t.Fatalf("expected insight on log %d, got %d", latest.ID, insight.DailyLogID)
	}
}

func TestAIServiceAnalyzeUnstructuredFallback(t *testing.T) {
	cleanup := setupAITestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	seedAnalysisLogs(t, user.ID, minLogsForAnalysis)

	svc := NewAIService(db.DB, "sk-test", "")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return anthropicTextResponse(t, "I could not produce JSON but exercise seems to help."), nil
	}})

	insight, err := svc.AnalyzeMoodPatterns(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("AnalyzeMoodPatterns returned error: %v", err)
	}
	if insight.Content != "I could not produce JSON but exercise seems to help." {
		t.Fatalf("unexpected fallback content: %s", insight.Content)
	}
	if insight.ConfidenceScore != defaultConfidenceScore {
		t.Fatalf("unexpected confidence: %f", insight.ConfidenceScore)
	}
}

func TestAIServiceAnalyzeAPIError(t *testing.T) {
	cleanup := setupAITestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	seedAnalysisLogs(t, user.ID, minLogsForAnalysis)

	svc := NewAIService(db.DB, "sk-test", "")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return nil, fmt.Errorf("connection refused")
	}})

	if _, err := svc.AnalyzeMoodPatterns(context.Background(), user.ID); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}

	// 失败时不落库
	var count int64
	db.DB.Model(&db.AIInsight{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no insight rows, got %d", count)
	}
}

func TestAIServiceGenerateRecommendation(t *testing.T) {
	cleanup := setupAITestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	seedAnalysisLogs(t, user.ID, 3)

	profiles := NewProfileService(db.DB)
	if _, err := profiles.Update(user.ID, ProfileInput{
		ActivityPreferences: map[string]any{"outdoor": true},
	}); err != nil {
		t.Fatalf("failed to set preferences: %v", err)
	}

	svc := NewAIService(db.DB, "sk-test", "")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		var payload anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		// 偏好要出现在提示里
		if len(payload.Messages) != 1 || !bytes.Contains([]byte(payload.Messages[0].Content), []byte("outdoor")) {
			t.Fatalf("expected preferences in prompt: %#v", payload.Messages)
		}
		return anthropicTextResponse(t, `{"activity_name": "Nature walk", "description": "Take a 30 minute walk outside.", "duration_minutes": 30, "expected_benefit": "Mood improvement"}`), nil
	}})

	rec, err := svc.GenerateRecommendation(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenerateRecommendation returned error: %v", err)
	}
	if rec.ActivityName != "Nature walk" || rec.DurationMinutes != 30 {
		t.Fatalf("unexpected recommendation: %+v", rec)
	}
	if rec.UserID != user.ID {
		t.Fatalf("unexpected owner: %d", rec.UserID)
	}
}

func TestAIServiceGenerateRecommendationFallback(t *testing.T) {
	cleanup := setupAITestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")

	svc := NewAIService(db.DB, "sk-test", "")
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		return anthropicTextResponse(t, "Try going for a walk, it usually helps."), nil
	}})

	rec, err := svc.GenerateRecommendation(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GenerateRecommendation returned error: %v", err)
	}
	if rec.ActivityName != fallbackActivityName {
		t.Fatalf("expected fallback name, got %s", rec.ActivityName)
	}
	if rec.Description != "Try going for a walk, it usually helps." {
		t.Fatalf("unexpected fallback description: %s", rec.Description)
	}
}

func TestAnthropicClientDefaults(t *testing.T) {
	t.Parallel()

	client := newAnthropicClient("sk-test", "")
	if client.baseURL != defaultAnthropicBaseURL {
		t.Fatalf("unexpected base url: %s", client.baseURL)
	}

	httpClient, ok := client.http.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client.http)
	}
	if httpClient.Timeout < 3*time.Minute {
		t.Fatalf("default timeout should allow slow generations, got %v", httpClient.Timeout)
	}

	client.SetBaseURL("https://proxy.example.com/")
	if client.baseURL != "https://proxy.example.com" {
		t.Fatalf("unexpected base url after set: %s", client.baseURL)
	}

	client.SetModel("")
	if client.model != defaultAnthropicModel {
		t.Fatalf("empty model must keep default, got %s", client.model)
	}
}

func TestAnthropicClientMissingKey(t *testing.T) {
	t.Parallel()

	client := newAnthropicClient("", "")
	if _, err := client.complete(context.Background(), aiChatRequest{UserPrompt: "hello"}); err == nil {
		t.Fatal("expected error without api key")
	}
}
