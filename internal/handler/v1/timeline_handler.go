package v1

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/service"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/timeline"
)

const maxSearchLength = 200

// GetTimeline handles GET /timeline?search=&category=&window=.
func (h *Handler) GetTimeline(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	var fields []string

	search := strings.TrimSpace(c.Query("search"))
	if len(search) > maxSearchLength {
		fields = append(fields, "search: must be at most 200 characters")
	}

	category, err := timeline.ParseCategory(c.Query("category"))
	if err != nil {
		fields = append(fields, "category: must be one of all, record, prescription, checkup, medication, emergency")
	}

	window, err := timeline.ParseWindow(c.Query("window"))
	if err != nil {
		fields = append(fields, "window: must be one of all, 1month, 3months, 6months, 1year")
	}

	if len(fields) > 0 {
		respondServiceError(c, &service.ValidationError{Fields: fields})
		return
	}

	view, err := h.timeline.Build(requestContext(c), userID, timeline.Criteria{
		Search:   search,
		Category: category,
		Window:   window,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, view)
}
