package api

import (
	"github.com/backchannel-im/backchannel/pkg/internal/auth"
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/server/exts"
	"github.com/backchannel-im/backchannel/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func signUp(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required,min=3,max=32"`
		Nick     string `json:"nick"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.NewAccount(data.Name, data.Nick, data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(account)
}

func signIn(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.GetAccountWithEmail(data.Email)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := services.CheckAccountPassword(account, data.Password); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := auth.IssueToken(account.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	_ = services.SetAccountStatus(account, models.StatusOnline)

	return c.JSON(fiber.Map{
		"token":   token,
		"account": account,
	})
}

func signOut(c *fiber.Ctx) error {
	if user, ok := c.Locals("user").(models.Account); ok {
		_ = services.SetAccountStatus(user, models.StatusOffline)
	}

	// Tokens are stateless; the client discards its copy.
	return c.SendStatus(fiber.StatusNoContent)
}
