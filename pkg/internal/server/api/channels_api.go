package api

import (
	"github.com/backchannel-im/backchannel/pkg/internal/auth"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/server/exts"
	"github.com/backchannel-im/backchannel/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getChannel(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("channelId", 0)

	channel, err := services.GetChannel(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(channel)
}

func listChannel(c *fiber.Ctx) error {
	channels, err := services.ListChannel()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channels)
}

func listAvailableChannel(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	channels, err := services.ListAvailableChannel(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channels)
}

func createChannel(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Name        string `json:"name" validate:"required,min=3,max=64"`
		Description string `json:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	channel := models.Channel{
		Name:        data.Name,
		Description: data.Description,
		AccountID:   user.ID,
		Type:        models.ChannelTypeCommon,
		Members: []models.ChannelMember{
			{AccountID: user.ID, PowerLevel: 100},
		},
	}

	channel, err := services.NewChannel(channel)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channel)
}

func createDirectChannel(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		RelatedUser uint `json:"related_user" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	related, err := services.GetAccount(data.RelatedUser)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "related user was not found")
	}

	channel, err := services.GetOrCreateDirectChannel(user, related)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channel)
}

func editChannel(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	var data struct {
		Name        string `json:"name" validate:"required,min=3,max=64"`
		Description string `json:"description"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	channel, member, err := services.GetChannelIdentity(uint(id), user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if member.PowerLevel < 100 {
		return fiber.NewError(fiber.StatusForbidden, "you must be the channel moderator to edit it")
	}

	channel, err = services.EditChannel(channel, data.Name, data.Description)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channel)
}

func deleteChannel(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	channel, member, err := services.GetChannelIdentity(uint(id), user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if member.PowerLevel < 100 {
		return fiber.NewError(fiber.StatusForbidden, "you must be the channel moderator to delete it")
	}

	if err := services.DeleteChannel(channel); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
