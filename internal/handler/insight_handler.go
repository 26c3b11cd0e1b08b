package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderInsightHTML 将洞察正文按 Markdown 渲染并消毒，失败时退回原文
func renderInsightHTML(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return sanitizer.Sanitize(content)
	}
	return sanitizer.Sanitize(buf.String())
}

// AnalyzeInsights 基于历史日志生成心情洞察
func (a *API) AnalyzeInsights(c *gin.Context) {
	insight, err := a.ai.AnalyzeMoodPatterns(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, insightToPayload(insight))
}

// GenerateRecommendation 调用模型生成一条活动建议
func (a *API) GenerateRecommendation(c *gin.Context) {
	rec, err := a.ai.GenerateRecommendation(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recommendationToPayload(rec))
}
