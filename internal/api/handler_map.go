package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seatapp-web/internal/render"
	"seatapp-web/internal/upstream"
)

// fallbackFloor is used when the upstream has no usable first floor.
var fallbackFloor = upstream.Floor{ID: 1, Name: "Floor 1"}

// firstFloor picks the first floor of the upstream list, filling missing
// fields from fallbackFloor.
func firstFloor(floors []upstream.Floor) upstream.Floor {
	if len(floors) == 0 {
		return fallbackFloor
	}
	f := floors[0]
	if f.ID == 0 {
		f.ID = fallbackFloor.ID
	}
	if f.Name == "" {
		f.Name = fallbackFloor.Name
	}
	return f
}

// Map handles GET /map: the seats of the first floor and the signed-in user.
func (h *Handler) Map(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	cookie := cookieHeader(c)

	floors, err := h.upstream.Floors(ctx, cookie)
	if err != nil {
		h.renderError(c, err)
		return
	}
	floor := firstFloor(floors)

	seats, err := h.upstream.Seats(ctx, cookie, floor.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	codes := make([]string, len(seats))
	for i, s := range seats {
		codes[i] = s.Code
	}

	c.HTML(http.StatusOK, render.PageMap, render.MapView{
		FloorName: floor.Name,
		FloorID:   floor.ID,
		Seats:     codes,
		UserName:  user.Name,
		UserUPN:   user.UPN,
	})
}
