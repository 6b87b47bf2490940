package api

import (
	"github.com/backchannel-im/backchannel/pkg/internal/auth"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/server/exts"
	"github.com/backchannel-im/backchannel/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listUser(c *fiber.Ctx) error {
	accounts, err := services.ListAccount()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(accounts)
}

func getUserinfo(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(user)
}

func getOthersInfo(c *fiber.Ctx) error {
	accountId, _ := c.ParamsInt("accountId", 0)

	account, err := services.GetAccount(uint(accountId))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(account)
}

func editUserinfo(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Nick         string  `json:"nick" validate:"required,max=64"`
		Avatar       *string `json:"avatar"`
		ContactEmail *string `json:"contact_email"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.EditAccountProfile(user, data.Nick, data.Avatar, data.ContactEmail)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(account)
}

func editUserStatus(c *fiber.Ctx) error {
	if err := auth.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Status string `json:"status" validate:"required,oneof=online away offline"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := services.SetAccountStatus(user, data.Status); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.SendStatus(fiber.StatusNoContent)
}
