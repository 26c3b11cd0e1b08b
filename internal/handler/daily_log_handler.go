package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

const dateFormat = "2006-01-02"

type dailyLogPayload struct {
	Date        string `json:"date"`
	OverallMood int    `json:"overall_mood"`
	Notes       string `json:"notes"`
}

func (p dailyLogPayload) toInput() (service.DailyLogInput, bool) {
	input := service.DailyLogInput{
		OverallMood: p.OverallMood,
		Notes:       p.Notes,
	}
	if p.Date != "" {
		parsed, err := time.Parse(dateFormat, p.Date)
		if err != nil {
			return service.DailyLogInput{}, false
		}
		input.Date = parsed
	}
	return input, true
}

// CreateDailyLog 为调用者创建一条日志，同日重复返回 409。
func (a *API) CreateDailyLog(c *gin.Context) {
	var payload dailyLogPayload
	if !bindJSON(c, &payload, "invalid daily log payload") {
		return
	}

	input, ok := payload.toInput()
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	log, err := a.dailyLogs.Create(currentUserID(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dailyLogToPayload(log))
}

// ListDailyLogs 返回调用者的日志，支持日期区间过滤与分页。
func (a *API) ListDailyLogs(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := service.DailyLogFilter{Offset: offset, Limit: limit}

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateFormat, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateFormat, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		filter.EndDate = &parsed
	}

	logs, err := a.dailyLogs.List(currentUserID(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(logs))
	for i := range logs {
		items = append(items, dailyLogToPayload(&logs[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetDailyLog 返回单条日志及其全部子条目与洞察
func (a *API) GetDailyLog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := a.dailyLogs.GetWithChildren(currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailyLogWithChildrenPayload(log))
}

// UpdateDailyLog 全量替换日志的可变字段
func (a *API) UpdateDailyLog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload dailyLogPayload
	if !bindJSON(c, &payload, "invalid daily log payload") {
		return
	}

	input, ok := payload.toInput()
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	log, err := a.dailyLogs.Update(currentUserID(c), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailyLogToPayload(log))
}

// DeleteDailyLog 删除日志并级联清除子条目
func (a *API) DeleteDailyLog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.dailyLogs.Delete(currentUserID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListLogInsights 返回日志下的洞察记录
func (a *API) ListLogInsights(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := a.dailyLogs.Insights(currentUserID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(insights))
	for i := range insights {
		items = append(items, insightToPayload(&insights[i]))
	}
	c.JSON(http.StatusOK, items)
}
