package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RobertoSaucedoL/ELCHAL/internal/session"
)

// Storage stores the exported document somewhere public. Optional.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Handler struct {
	store   *session.Store
	storage Storage // nil when object storage is not configured
}

func NewHandler(store *session.Store, storage Storage) *Handler {
	return &Handler{store: store, storage: storage}
}

// --------------------------------------------------
// GET /sessions/:id/export  (?upload=1 to also push to object storage)
// --------------------------------------------------
func (h *Handler) Export(c *gin.Context) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	view := sess.Snapshot()
	if view.Combo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no working combo to export"})
		return
	}

	doc := Build(
		sess.Catalog(),
		sess.Costs(),
		*view.Combo,
		*view.Metrics,
		view.Params,
		view.Strategy,
		view.PrepTimeMin,
	)

	if c.Query("upload") == "1" {
		if h.storage == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "object storage not configured"})
			return
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		key := fmt.Sprintf("combos/%s/%s.json", sess.ID, slug(doc.Combo))
		url, err := h.storage.Upload(
			c.Request.Context(),
			key,
			bytes.NewReader(payload),
			"application/json",
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url, "export": doc})
		return
	}

	filename := fmt.Sprintf("combo_%s.json", slug(doc.Combo))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, doc)
}

func slug(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if s == "" {
		return "combo"
	}
	return s
}
