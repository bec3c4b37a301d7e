package v1

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetPrescription(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.prescriptions.Get(requestContext(c), userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

// AnalyzePrescription handles POST /prescriptions/:id/analyze. It blocks until
// the analysis finishes and returns the row in its terminal state.
func (h *Handler) AnalyzePrescription(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.prescriptions.Analyze(requestContext(c), userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}
