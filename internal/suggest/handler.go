package suggest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RobertoSaucedoL/ELCHAL/internal/session"
)

type Handler struct {
	store   *session.Store
	service *Service
}

func NewHandler(store *session.Store, service *Service) *Handler {
	return &Handler{store: store, service: service}
}

// --------------------------------------------------
// POST /sessions/:id/suggestions
// --------------------------------------------------
func (h *Handler) Suggest(c *gin.Context) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	cat := sess.Catalog()
	if cat.Len() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upload a catalog first"})
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		// body is optional; defaults apply
		req = Request{}
	}

	result := h.service.Suggest(
		c.Request.Context(),
		cat,
		sess.Costs(),
		sess.Params(),
		req,
	)

	resp := gin.H{"candidates": result.Candidates}
	if result.AIUnavailable {
		resp["ai_unavailable"] = true
		resp["note"] = "Sugerencias generadas localmente; el asistente de IA no está disponible."
	}
	c.JSON(http.StatusOK, resp)
}
