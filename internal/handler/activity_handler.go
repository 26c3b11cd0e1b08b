package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type recommendationPayload struct {
	ActivityName    string `json:"activity_name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	ExpectedBenefit string `json:"expected_benefit"`
}

type recommendationUpdatePayload struct {
	IsCompleted *bool `json:"is_completed"`
	UserRating  *int  `json:"user_rating"`
}

// CreateRecommendation 手动创建一条活动建议
func (a *API) CreateRecommendation(c *gin.Context) {
	var payload recommendationPayload
	if !bindJSON(c, &payload, "invalid recommendation payload") {
		return
	}

	rec, err := a.activities.Create(currentUserID(c), service.RecommendationInput{
		ActivityName:    payload.ActivityName,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		ExpectedBenefit: payload.ExpectedBenefit,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recommendationToPayload(rec))
}

// ListRecommendations 返回当前用户的活动建议，按创建时间倒序
func (a *API) ListRecommendations(c *gin.Context) {
	offset, limit := parsePagination(c)

	recs, err := a.activities.List(currentUserID(c), offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(recs))
	for i := range recs {
		items = append(items, recommendationToPayload(&recs[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetRecommendation 返回单条活动建议
func (a *API) GetRecommendation(c *gin.Context) {
	recID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := a.activities.Get(currentUserID(c), recID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendationToPayload(rec))
}

// UpdateRecommendation 部分更新完成状态与评分
func (a *API) UpdateRecommendation(c *gin.Context) {
	recID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	var payload recommendationUpdatePayload
	if !bindJSON(c, &payload, "invalid recommendation update payload") {
		return
	}

	rec, err := a.activities.Update(currentUserID(c), recID, service.RecommendationUpdate{
		IsCompleted: payload.IsCompleted,
		UserRating:  payload.UserRating,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recommendationToPayload(rec))
}

// DeleteRecommendation 删除活动建议
func (a *API) DeleteRecommendation(c *gin.Context) {
	recID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.activities.Delete(currentUserID(c), recID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
