package controllers

import (
	"io"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"github.com/gin-gonic/gin"
)

// EventsController streams order notifications to the client over
// server-sent events
type EventsController interface {
	Stream(ctx *gin.Context)
}

type eventsController struct {
	hub *notify.Hub
}

// NewEventsController creates a new instance of EventsController
func NewEventsController(hub *notify.Hub) EventsController {
	return &eventsController{hub: hub}
}

// Stream godoc
// @Summary Subscribe to order notifications (SSE)
// @Description The caller joins its own user room; admins additionally
// @Description join the admin room. Delivery is at-most-once with no
// @Description replay: events sent while disconnected are missed.
// @Tags events
// @Produce text/event-stream
// @Security BearerAuth
// @Router /events [get]
func (c *eventsController) Stream(ctx *gin.Context) {
	userID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	rooms := []string{notify.UserRoom(userID)}
	if role == "admin" {
		rooms = append(rooms, notify.AdminRoom)
	}

	events, cancel := c.hub.Subscribe(rooms...)
	defer cancel()

	clientGone := ctx.Request.Context().Done()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			ctx.SSEvent(ev.Name, ev.Payload)
			return true
		case <-clientGone:
			return false
		}
	})
}
