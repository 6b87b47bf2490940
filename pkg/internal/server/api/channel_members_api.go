package api

import (
	"github.com/backchannel-im/backchannel/pkg/internal/auth"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/server/exts"
	"github.com/backchannel-im/backchannel/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listChannelMembers(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("channelId", 0)

	members, err := services.ListChannelMember(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(members)
}

func addChannelMembers(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	var data struct {
		AccountIDs []uint `json:"account_ids" validate:"required,min=1"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, _, err := services.GetChannelIdentity(uint(id), user.ID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to join the channel before inviting others")
	}

	if err := services.AddChannelMembers(uint(id), data.AccountIDs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func removeChannelMember(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)
	accountId, _ := c.ParamsInt("accountId", 0)

	_, member, err := services.GetChannelIdentity(uint(id), user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to be in the channel to manage it")
	}
	if uint(accountId) != user.ID && member.PowerLevel < 100 {
		return fiber.NewError(fiber.StatusForbidden, "you must be the channel moderator to kick others")
	}

	if err := services.RemoveChannelMember(uint(id), uint(accountId)); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func setReadingAnchor(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	var data struct {
		MessageCount int `json:"message_count" validate:"min=0"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	member, err := services.GetChannelMember(user.ID, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you are not a member of this channel")
	}

	services.SetReadingAnchor(member.ID, data.MessageCount)
	return c.SendStatus(fiber.StatusNoContent)
}

func setTypingStatus(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	if err := services.SetTypingStatus(uint(id), user.ID); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
