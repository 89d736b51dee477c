package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform JSON wrapper around every API response.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// respond renders a success envelope. Error envelopes are rendered by the
// central HTTP error handler so every failure path shares one shape.
func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}
