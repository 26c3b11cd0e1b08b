package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

type profilePayload struct {
	Bio                 string         `json:"bio"`
	Timezone            string         `json:"timezone"`
	ActivityPreferences map[string]any `json:"activity_preferences"`
}

// GetProfile 返回调用者本人的档案
func (a *API) GetProfile(c *gin.Context) {
	profile, err := a.profiles.Get(currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToPayload(profile))
}

// UpdateProfile 全量替换调用者本人的档案
func (a *API) UpdateProfile(c *gin.Context) {
	var payload profilePayload
	if !bindJSON(c, &payload, "invalid profile payload") {
		return
	}

	profile, err := a.profiles.Update(currentUserID(c), service.ProfileInput{
		Bio:                 payload.Bio,
		Timezone:            payload.Timezone,
		ActivityPreferences: payload.ActivityPreferences,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileToPayload(profile))
}
