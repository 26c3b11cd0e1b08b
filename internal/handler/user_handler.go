package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListUsers 返回用户列表 JSON
func (a *API) ListUsers(c *gin.Context) {
	offset, limit := parsePagination(c)

	users, err := a.users.List(offset, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]gin.H, 0, len(users))
	for i := range users {
		items = append(items, userToPayload(&users[i]))
	}
	c.JSON(http.StatusOK, items)
}

// GetUser 返回单个用户及其档案
func (a *API) GetUser(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.users.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userWithProfilePayload(user))
}
