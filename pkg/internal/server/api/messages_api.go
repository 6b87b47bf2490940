package api

import (
	"errors"

	"github.com/backchannel-im/backchannel/pkg/internal/auth"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/server/exts"
	"github.com/backchannel-im/backchannel/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

func listMessage(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	if _, _, err := services.GetChannelIdentity(uint(id), user.ID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to join the channel before reading messages")
	}

	messages, err := services.ListMessage(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	accounts, err := services.ListAccount()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	lookup := lo.SliceToMap(accounts, func(item models.Account) (uint, models.Account) {
		return item.ID, item
	})

	return c.JSON(fiber.Map{
		"count": services.CountMessage(uint(id)),
		"data":  services.EnrichMessages(messages, lookup),
	})
}

func newMessage(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	id, _ := c.ParamsInt("channelId", 0)

	var data struct {
		Content     string              `json:"content" validate:"required"`
		Attachments []models.Attachment `json:"attachments"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, _, err := services.GetChannelIdentity(uint(id), user.ID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to join the channel before sending messages")
	}

	message, err := services.NewMessage(uint(id), user.ID, data.Content, data.Attachments)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(message)
}

func editMessage(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)
	messageId, _ := c.ParamsInt("messageId", 0)

	var data struct {
		Content string `json:"content" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	message, err := services.GetMessage(uint(channelId), uint(messageId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if message.SenderID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you can only edit your own messages")
	}

	message, err = services.EditMessage(message, data.Content)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(message)
}

func deleteMessage(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)
	messageId, _ := c.ParamsInt("messageId", 0)

	message, err := services.GetMessage(uint(channelId), uint(messageId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	} else if message.SenderID != user.ID {
		return fiber.NewError(fiber.StatusForbidden, "you can only delete your own messages")
	}

	if err := services.DeleteMessage(message); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func toggleReaction(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)
	messageId, _ := c.ParamsInt("messageId", 0)

	var data struct {
		Emoji string `json:"emoji" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, _, err := services.GetChannelIdentity(uint(channelId), user.ID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to join the channel before reacting")
	}
	if _, err := services.GetMessage(uint(channelId), uint(messageId)); err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	message, err := services.ToggleReaction(uint(messageId), data.Emoji, user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(message)
}

func listThreadReply(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)
	messageId, _ := c.ParamsInt("messageId", 0)

	if _, _, err := services.GetChannelIdentity(uint(channelId), user.ID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to join the channel before reading threads")
	}

	replies, err := services.ListThreadReply(uint(messageId))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(replies)
}

func newThreadReply(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)
	messageId, _ := c.ParamsInt("messageId", 0)

	var data struct {
		Content string `json:"content" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, _, err := services.GetChannelIdentity(uint(channelId), user.ID); err != nil {
		return fiber.NewError(fiber.StatusForbidden, "you need to join the channel before replying")
	}

	reply, err := services.PostThreadReply(uint(messageId), user.ID, data.Content)
	if err != nil {
		if errors.Is(err, services.ErrThreadCounterStale) {
			// The reply itself landed; tell the caller the counter is behind.
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
				"data":    reply,
				"warning": err.Error(),
			})
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(reply)
}
