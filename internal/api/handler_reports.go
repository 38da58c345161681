package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"seatapp-web/internal/render"
	"seatapp-web/internal/upstream"
)

var reportTitles = map[upstream.Period]string{
	upstream.Weekly:  "Weekly",
	upstream.Monthly: "Monthly",
	upstream.Yearly:  "Yearly",
}

// Reports handles GET /reports. The three reports are fetched concurrently;
// if any of them fails the whole page fails.
func (h *Handler) Reports(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	cookie := cookieHeader(c)
	payloads := make([]json.RawMessage, len(upstream.Periods))

	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, period := range upstream.Periods {
		g.Go(func() error {
			raw, err := h.upstream.Report(ctx, cookie, period)
			if err != nil {
				return fmt.Errorf("%s report: %w", period, err)
			}
			payloads[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.renderError(c, err)
		return
	}

	view := render.ReportsView{Sections: make([]render.ReportSection, 0, len(payloads))}
	for i, period := range upstream.Periods {
		var buf bytes.Buffer
		if err := json.Indent(&buf, payloads[i], "", "  "); err != nil {
			h.renderError(c, fmt.Errorf("%s report: %w", period, err))
			return
		}
		view.Sections = append(view.Sections, render.ReportSection{
			Title: reportTitles[period],
			JSON:  buf.String(),
		})
	}

	c.HTML(http.StatusOK, render.PageReports, view)
}
