package controller

import (
	"errors"

	"github.com/benbeisheim/roomchess-backend/internal/model"
	"github.com/benbeisheim/roomchess-backend/internal/service"
	"github.com/benbeisheim/roomchess-backend/internal/setup"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type RoomController struct {
	roomService *service.RoomService
	log         zerolog.Logger
}

func NewRoomController(roomService *service.RoomService, log zerolog.Logger) *RoomController {
	return &RoomController{roomService: roomService, log: log}
}

func (rc *RoomController) ListRooms(c *fiber.Ctx) error {
	return c.JSON(rc.roomService.Rooms())
}

func (rc *RoomController) OpenRoom(c *fiber.Ctx) error {
	roomID, err := rc.roomService.OpenRoom()
	if err != nil {
		return rc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"roomId": roomID,
	})
}

func (rc *RoomController) GetRoomState(c *fiber.Ctx) error {
	roomID, err := rc.roomService.ParseRoomID(c.Params("roomId"))
	if err != nil {
		return rc.fail(c, err)
	}

	state, err := rc.roomService.GetRoomState(roomID)
	if err != nil {
		return rc.fail(c, err)
	}
	return c.JSON(state)
}

func (rc *RoomController) GetMoves(c *fiber.Ctx) error {
	roomID, err := rc.roomService.ParseRoomID(c.Params("roomId"))
	if err != nil {
		return rc.fail(c, err)
	}
	playerID := c.Locals("playerID").(string)
	square := c.Params("square")

	moves, err := rc.roomService.Moves(roomID, playerID, square)
	if err != nil {
		return rc.fail(c, err)
	}
	return c.JSON(model.MovesEvent{Square: square, Targets: moves})
}

func (rc *RoomController) DeleteSnapshot(c *fiber.Ctx) error {
	roomID, err := rc.roomService.ParseRoomID(c.Params("roomId"))
	if err != nil {
		return rc.fail(c, err)
	}
	if err := rc.roomService.DeleteSnapshot(roomID); err != nil {
		return rc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (rc *RoomController) ValidateSetup(c *fiber.Ctx) error {
	var req struct {
		Arrangement setup.Arrangement `json:"arrangement"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := rc.roomService.ValidateArrangement(req.Arrangement); err != nil {
		return rc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"valid": true,
	})
}

// fail maps service and model errors onto HTTP statuses.
func (rc *RoomController) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrNoOpenRoom):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, setup.ErrInvalidArrangement):
		status = fiber.StatusBadRequest
	case errors.Is(err, model.ErrNotInRoom):
		status = fiber.StatusForbidden
	case errors.Is(err, model.ErrNotPlaying):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		rc.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
