package api

import (
	"github.com/backchannel-im/backchannel/pkg/internal/models"
	"github.com/backchannel-im/backchannel/pkg/internal/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

func unifiedGateway(c *websocket.Conn) {
	user, ok := c.Locals("user").(models.Account)
	if !ok {
		_ = c.WriteMessage(websocket.TextMessage, models.UnifiedCommand{
			Action:  "error",
			Message: "you need to be authenticated first",
		}.Marshal())
		_ = c.Close()
		return
	}

	clientId := uuid.NewString()

	// Push connection
	services.ClientRegister(user, c)

	// Event loop
	var task models.UnifiedCommand

	var messageType int
	var packet []byte
	var err error

	for {
		if messageType, packet, err = c.ReadMessage(); err != nil {
			break
		} else if err := jsoniter.Unmarshal(packet, &task); err != nil {
			_ = c.WriteMessage(messageType, models.UnifiedCommand{
				Action:  "error",
				Message: "unable to unmarshal your command, requires json request",
			}.Marshal())
			continue
		}

		message := dealCommand(task, user, clientId)

		if message != nil {
			if err = c.WriteMessage(messageType, message.Marshal()); err != nil {
				break
			}
		}
	}

	// Pop connection
	services.ClientUnregister(user, c)
	services.UnsubscribeAllWithClient(clientId)
}

func dealCommand(task models.UnifiedCommand, user models.Account, clientId string) *models.UnifiedCommand {
	switch task.Action {
	case "channels.subscribe":
		var req struct {
			ChannelID uint `json:"channel_id"`
		}
		models.FitStruct(task.Payload, &req)

		if _, _, err := services.GetChannelIdentity(req.ChannelID, user.ID); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}

		// One viewed channel per client: switching subscriptions drops the
		// previous one first, same as the message feed slot.
		services.UnsubscribeAllWithClient(clientId)
		services.SubscribeChannel(user.ID, req.ChannelID, clientId)
		return nil
	case "channels.unsubscribe":
		var req struct {
			ChannelID uint `json:"channel_id"`
		}
		models.FitStruct(task.Payload, &req)

		services.UnsubscribeChannel(user.ID, req.ChannelID)
		return nil
	case "messages.send.text":
		var req struct {
			ChannelID uint   `json:"channel_id"`
			Content   string `json:"content"`
		}
		models.FitStruct(task.Payload, &req)

		if _, _, err := services.GetChannelIdentity(req.ChannelID, user.ID); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		} else if _, err = services.NewMessage(req.ChannelID, user.ID, req.Content, nil); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		return nil
	case "status.typing":
		var req struct {
			ChannelID uint `json:"channel_id"`
		}
		models.FitStruct(task.Payload, &req)

		if err := services.SetTypingStatus(req.ChannelID, user.ID); err != nil {
			return lo.ToPtr(models.UnifiedCommandFromError(err))
		}
		return nil
	default:
		return &models.UnifiedCommand{
			Action:  "error",
			Message: "command not found",
		}
	}
}
