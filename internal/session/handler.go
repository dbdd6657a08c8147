package session

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RobertoSaucedoL/ELCHAL/internal/catalog"
	"github.com/RobertoSaucedoL/ELCHAL/internal/combo"
	"github.com/RobertoSaucedoL/ELCHAL/internal/pricing"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// session resolves the :id path param; replies 404 itself on a miss.
func (h *Handler) session(c *gin.Context) (*Session, bool) {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

// --------------------------------------------------
// POST /sessions
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	sess := h.store.Create()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID,
		"state":      "EMPTY",
	})
}

// --------------------------------------------------
// POST /sessions/:id/catalog  (multipart csv_file)
// --------------------------------------------------
func (h *Handler) UploadCatalog(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("csv_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv_file is required"})
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv files are accepted"})
		return
	}

	head, rows, err := catalog.ReadCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := catalog.Normalize(head, rows)
	if err != nil {
		var missing *catalog.MissingColumnError
		if errors.As(err, &missing) {
			// fatal for this load: surfaced, no partial catalog kept
			c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess.SetCatalog(cat)

	c.JSON(http.StatusCreated, gin.H{
		"products":      cat.Len(),
		"categories":    cat.Categories(),
		"subcategories": cat.Subcategories(),
	})
}

// --------------------------------------------------
// GET /sessions/:id/catalog
// --------------------------------------------------
func (h *Handler) GetCatalog(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	cat := sess.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"count":         cat.Len(),
		"categories":    cat.Categories(),
		"subcategories": cat.Subcategories(),
		"products":      cat.Products(),
	})
}

// --------------------------------------------------
// PUT /sessions/:id/cost-model
// --------------------------------------------------
func (h *Handler) PutCostModel(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Fractions map[string]float64 `json:"fractions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Fractions) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fractions map is required"})
		return
	}

	sess.SetCostFractions(req.Fractions)
	c.JSON(http.StatusOK, gin.H{"fractions": sess.Costs().Fractions()})
}

// --------------------------------------------------
// PUT /sessions/:id/params
// --------------------------------------------------
func (h *Handler) PutParams(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var params combo.Params
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess.SetParams(params)
	c.JSON(http.StatusOK, sess.Snapshot())
}

// --------------------------------------------------
// PUT /sessions/:id/strategy
// --------------------------------------------------
func (h *Handler) PutStrategy(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var st pricing.Strategy
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess.SetStrategy(st)
	c.JSON(http.StatusOK, sess.Snapshot())
}

// --------------------------------------------------
// POST /sessions/:id/combo/items
// --------------------------------------------------
func (h *Handler) UpsertItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var item combo.LineItem
	if err := c.ShouldBindJSON(&item); err != nil || item.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id and qty are required"})
		return
	}

	if err := sess.UpsertItem(item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// --------------------------------------------------
// DELETE /sessions/:id/combo/items/:productID
// --------------------------------------------------
func (h *Handler) RemoveItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if err := sess.RemoveItem(c.Param("productID")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// --------------------------------------------------
// PUT /sessions/:id/combo/name
// --------------------------------------------------
func (h *Handler) Rename(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		PrepTimeMin int    `json:"prep_time_min"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := sess.Rename(req.Name, req.PrepTimeMin); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// --------------------------------------------------
// GET /sessions/:id/combo
// --------------------------------------------------
func (h *Handler) GetCombo(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// --------------------------------------------------
// POST /sessions/:id/combo/apply
// --------------------------------------------------
func (h *Handler) ApplyCandidate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var candidate combo.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil || len(candidate.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "candidate with items is required"})
		return
	}

	sess.Apply(candidate)
	c.JSON(http.StatusOK, sess.Snapshot())
}
