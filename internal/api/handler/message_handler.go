package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// MessageHandler exposes the message board REST API.
type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type messageRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
	Text  string `json:"texto" form:"texto" validate:"required"`
}

func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.messages.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) Create(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messages.Create(c.Request().Context(), req.Email, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, message)
}
