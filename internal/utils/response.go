package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the JSON envelope every endpoint replies with.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

func send(c *fiber.Ctx, status int, ok bool, message string, data interface{}) error {
	return c.Status(status).JSON(APIResponse{
		Success: ok,
		Data:    data,
		Message: message,
	})
}

// SendSuccess replies 200 with a success envelope.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendCreated replies 201 with a success envelope.
func SendCreated(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusCreated, message, data)
}

// SendSuccessWithStatus replies with a success envelope using the given
// status, defaulting the message and status when left zero.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}
	return send(c, status, true, message, data)
}

// SendError replies with a failure envelope and no data.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}
	return send(c, status, false, message, nil)
}
