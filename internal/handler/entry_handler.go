package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

// 条目请求载荷：时间字段统一接收 RFC3339 字符串，缺省由服务层补当前时间。

type foodEntryPayload struct {
	FoodName    string `json:"food_name"`
	Description string `json:"description"`
	MealType    string `json:"meal_type"`
	Calories    int    `json:"calories"`
	Timestamp   string `json:"timestamp"`
}

type exerciseEntryPayload struct {
	ExerciseType    string `json:"exercise_type"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	CaloriesBurned  int    `json:"calories_burned"`
	Timestamp       string `json:"timestamp"`
}

type workEntryPayload struct {
	Description        string    `json:"description"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	ProductivityRating int       `json:"productivity_rating"`
	StressLevel        int       `json:"stress_level"`
}

type eventEntryPayload struct {
	Description  string `json:"description"`
	EventType    string `json:"event_type"`
	ImpactRating int    `json:"impact_rating"`
	Timestamp    string `json:"timestamp"`
}

type moodEntryPayload struct {
	MoodRating  int            `json:"mood_rating"`
	Description string         `json:"description"`
	Factors     map[string]any `json:"factors"`
	Timestamp   string         `json:"timestamp"`
}

// entryIDs 解析路径上的日志 ID 与可选的条目 ID
func entryIDs(c *gin.Context, withEntry bool) (logID, entryID uint, ok bool) {
	logID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	if withEntry {
		entryID, err = parseUintParam(c, "entryID")
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return 0, 0, false
		}
	}
	return logID, entryID, true
}

func bindEntryTimestamp(c *gin.Context, raw string) (time.Time, bool) {
	ts, ok := parseTimestamp(raw)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid timestamp, expected RFC3339")
		return time.Time{}, false
	}
	return ts, true
}

// CreateFoodEntry 为日志新增饮食条目
func (a *API) CreateFoodEntry(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	var payload foodEntryPayload
	if !bindJSON(c, &payload, "invalid food entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.CreateFood(currentUserID(c), logID, service.FoodEntryInput{
		FoodName:    payload.FoodName,
		Description: payload.Description,
		MealType:    payload.MealType,
		Calories:    payload.Calories,
		Timestamp:   ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, foodEntryToPayload(entry))
}

// ListFoodEntries 返回日志下的饮食条目
func (a *API) ListFoodEntries(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, err := a.entries.ListFood(currentUserID(c), logID, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		items = append(items, foodEntryToPayload(&entries[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetFoodEntry 返回单条饮食条目
func (a *API) GetFoodEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	entry, err := a.entries.GetFood(currentUserID(c), logID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, foodEntryToPayload(entry))
}

// UpdateFoodEntry 全量替换饮食条目
func (a *API) UpdateFoodEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	var payload foodEntryPayload
	if !bindJSON(c, &payload, "invalid food entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.UpdateFood(currentUserID(c), logID, entryID, service.FoodEntryInput{
		FoodName:    payload.FoodName,
		Description: payload.Description,
		MealType:    payload.MealType,
		Calories:    payload.Calories,
		Timestamp:   ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, foodEntryToPayload(entry))
}

// DeleteFoodEntry 删除饮食条目
func (a *API) DeleteFoodEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	if err := a.entries.DeleteFood(currentUserID(c), logID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateExerciseEntry 为日志新增运动条目
func (a *API) CreateExerciseEntry(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	var payload exerciseEntryPayload
	if !bindJSON(c, &payload, "invalid exercise entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.CreateExercise(currentUserID(c), logID, service.ExerciseEntryInput{
		ExerciseType:    payload.ExerciseType,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		Intensity:       payload.Intensity,
		CaloriesBurned:  payload.CaloriesBurned,
		Timestamp:       ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exerciseEntryToPayload(entry))
}

// ListExerciseEntries 返回日志下的运动条目
func (a *API) ListExerciseEntries(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, err := a.entries.ListExercise(currentUserID(c), logID, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		items = append(items, exerciseEntryToPayload(&entries[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetExerciseEntry 返回单条运动条目
func (a *API) GetExerciseEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	entry, err := a.entries.GetExercise(currentUserID(c), logID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exerciseEntryToPayload(entry))
}

// UpdateExerciseEntry 全量替换运动条目
func (a *API) UpdateExerciseEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	var payload exerciseEntryPayload
	if !bindJSON(c, &payload, "invalid exercise entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.UpdateExercise(currentUserID(c), logID, entryID, service.ExerciseEntryInput{
		ExerciseType:    payload.ExerciseType,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		Intensity:       payload.Intensity,
		CaloriesBurned:  payload.CaloriesBurned,
		Timestamp:       ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exerciseEntryToPayload(entry))
}

// DeleteExerciseEntry 删除运动条目
func (a *API) DeleteExerciseEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	if err := a.entries.DeleteExercise(currentUserID(c), logID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateWorkEntry 为日志新增工作条目
func (a *API) CreateWorkEntry(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	var payload workEntryPayload
	if !bindJSON(c, &payload, "invalid work entry payload") {
		return
	}

	entry, err := a.entries.CreateWork(currentUserID(c), logID, service.WorkEntryInput{
		Description:        payload.Description,
		StartTime:          payload.StartTime,
		EndTime:            payload.EndTime,
		ProductivityRating: payload.ProductivityRating,
		StressLevel:        payload.StressLevel,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workEntryToPayload(entry))
}

// ListWorkEntries 返回日志下的工作条目
func (a *API) ListWorkEntries(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, err := a.entries.ListWork(currentUserID(c), logID, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		items = append(items, workEntryToPayload(&entries[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetWorkEntry 返回单条工作条目
func (a *API) GetWorkEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	entry, err := a.entries.GetWork(currentUserID(c), logID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workEntryToPayload(entry))
}

// UpdateWorkEntry 全量替换工作条目
func (a *API) UpdateWorkEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	var payload workEntryPayload
	if !bindJSON(c, &payload, "invalid work entry payload") {
		return
	}

	entry, err := a.entries.UpdateWork(currentUserID(c), logID, entryID, service.WorkEntryInput{
		Description:        payload.Description,
		StartTime:          payload.StartTime,
		EndTime:            payload.EndTime,
		ProductivityRating: payload.ProductivityRating,
		StressLevel:        payload.StressLevel,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workEntryToPayload(entry))
}

// DeleteWorkEntry 删除工作条目
func (a *API) DeleteWorkEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	if err := a.entries.DeleteWork(currentUserID(c), logID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateEventEntry 为日志新增事件条目
func (a *API) CreateEventEntry(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	var payload eventEntryPayload
	if !bindJSON(c, &payload, "invalid event entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.CreateEvent(currentUserID(c), logID, service.EventEntryInput{
		Description:  payload.Description,
		EventType:    payload.EventType,
		ImpactRating: payload.ImpactRating,
		Timestamp:    ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, eventEntryToPayload(entry))
}

// ListEventEntries 返回日志下的事件条目
func (a *API) ListEventEntries(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, err := a.entries.ListEvents(currentUserID(c), logID, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		items = append(items, eventEntryToPayload(&entries[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetEventEntry 返回单条事件条目
func (a *API) GetEventEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	entry, err := a.entries.GetEvent(currentUserID(c), logID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventEntryToPayload(entry))
}

// UpdateEventEntry 全量替换事件条目
func (a *API) UpdateEventEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	var payload eventEntryPayload
	if !bindJSON(c, &payload, "invalid event entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.UpdateEvent(currentUserID(c), logID, entryID, service.EventEntryInput{
		Description:  payload.Description,
		EventType:    payload.EventType,
		ImpactRating: payload.ImpactRating,
		Timestamp:    ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, eventEntryToPayload(entry))
}

// DeleteEventEntry 删除事件条目
func (a *API) DeleteEventEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	if err := a.entries.DeleteEvent(currentUserID(c), logID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateMoodEntry 为日志新增心情条目
func (a *API) CreateMoodEntry(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	var payload moodEntryPayload
	if !bindJSON(c, &payload, "invalid mood entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.CreateMood(currentUserID(c), logID, service.MoodEntryInput{
		MoodRating:  payload.MoodRating,
		Description: payload.Description,
		Factors:     payload.Factors,
		Timestamp:   ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, moodEntryToPayload(entry))
}

// ListMoodEntries 返回日志下的心情条目
func (a *API) ListMoodEntries(c *gin.Context) {
	logID, _, ok := entryIDs(c, false)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	entries, err := a.entries.ListMood(currentUserID(c), logID, offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(entries))
	for i := range entries {
		items = append(items, moodEntryToPayload(&entries[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetMoodEntry 返回单条心情条目
func (a *API) GetMoodEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	entry, err := a.entries.GetMood(currentUserID(c), logID, entryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, moodEntryToPayload(entry))
}

// UpdateMoodEntry 全量替换心情条目
func (a *API) UpdateMoodEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	var payload moodEntryPayload
	if !bindJSON(c, &payload, "invalid mood entry payload") {
		return
	}
	ts, ok := bindEntryTimestamp(c, payload.Timestamp)
	if !ok {
		return
	}

	entry, err := a.entries.UpdateMood(currentUserID(c), logID, entryID, service.MoodEntryInput{
		MoodRating:  payload.MoodRating,
		Description: payload.Description,
		Factors:     payload.Factors,
		Timestamp:   ts,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, moodEntryToPayload(entry))
}

// DeleteMoodEntry 删除心情条目
func (a *API) DeleteMoodEntry(c *gin.Context) {
	logID, entryID, ok := entryIDs(c, true)
	if !ok {
		return
	}
	if err := a.entries.DeleteMood(currentUserID(c), logID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
