package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/newsagent/models"
)

type ChatHandler struct {
	Chat Chatter
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "News Agent API is running",
	})
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.UserPreferences == nil {
		req.UserPreferences = models.Preferences{}
	}

	res, err := h.Chat.Chat(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error processing chat request: "+err.Error()).SetInternal(err)
	}
	return c.JSON(http.StatusOK, res)
}
