package api

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		api.Post("/auth/sign-up", signUp)
		api.Post("/auth/sign-in", signIn)
		api.Post("/auth/sign-out", signOut)

		api.Get("/users", listUser)
		api.Get("/users/me", getUserinfo)
		api.Put("/users/me", editUserinfo)
		api.Put("/users/me/status", editUserStatus)
		api.Get("/users/:accountId", getOthersInfo)

		channels := api.Group("/channels").Name("Channels API")
		{
			channels.Get("/", listChannel)
			channels.Get("/me/available", listAvailableChannel)
			channels.Get("/:channelId", getChannel)
			channels.Post("/", createChannel)
			channels.Post("/dm", createDirectChannel)
			channels.Put("/:channelId", editChannel)
			channels.Delete("/:channelId", deleteChannel)

			channels.Get("/:channelId/members", listChannelMembers)
			channels.Post("/:channelId/members", addChannelMembers)
			channels.Delete("/:channelId/members/:accountId", removeChannelMember)
			channels.Put("/:channelId/read", setReadingAnchor)
			channels.Post("/:channelId/typing", setTypingStatus)

			channels.Get("/:channelId/messages", listMessage)
			channels.Post("/:channelId/messages", newMessage)
			channels.Put("/:channelId/messages/:messageId", editMessage)
			channels.Delete("/:channelId/messages/:messageId", deleteMessage)
			channels.Post("/:channelId/messages/:messageId/reactions", toggleReaction)

			channels.Get("/:channelId/messages/:messageId/thread", listThreadReply)
			channels.Post("/:channelId/messages/:messageId/thread", newThreadReply)
		}

		api.Get("/ws", websocket.New(unifiedGateway))
	}
}
