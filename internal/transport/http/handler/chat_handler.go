package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venue-booking-api/internal/feature/chat"
	httpez "venue-booking-api/internal/transport/http/ez"
)

type ChatHandler struct{ client *chat.Client }

func NewChatHandler(client *chat.Client) *ChatHandler { return &ChatHandler{client: client} }

func (h *ChatHandler) MountAPI(e httpez.EZ) {
	httpez.RegisterAction(e, httpez.Action[chat.Input, *chat.Reply]{
		Method: http.MethodPost,
		Path:   "/chat",
		Binder: httpez.BindJSON,
		Auth:   httpez.AuthOptional,
		Handler: func(c *gin.Context, in *chat.Input) (*chat.Reply, error) {
			out, err := h.client.Ask(c.Request.Context(), *in)
			switch {
			case err == nil:
				return out, nil
			case errors.Is(err, chat.ErrNotConfigured), errors.Is(err, chat.ErrBreakerOpen):
				return nil, httpez.Unavailable(err.Error(), err)
			default:
				return nil, httpez.BadGateway("chat assistant failed to respond", err)
			}
		},
	})
}
