package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/interpret"
	"github.com/five82/dreamline/internal/symbols"
)

const (
	msgDreamRequired = "Dream text is required."
	msgDreamTooLarge = "Dream text is too long."

	maxBodyBytes = 64 << 10
)

// Handler serves the interpretation API.
type Handler struct {
	catalog *symbols.Catalog
	logger  *zap.Logger
}

// NewHandler builds a Handler over catalog.
func NewHandler(catalog *symbols.Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: catalog, logger: logger}
}

// RegisterRoutes mounts the API on router.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST(interpret.InterpretPath, h.Interpret)
	router.GET(interpret.HealthPath, h.Health)
	router.HEAD(interpret.HealthPath, h.Health)
}

// Interpret answers POST /api/interpret.
func (h *Handler) Interpret(c *gin.Context) {
	raw, err := extractDream(c)
	if err != nil {
		rejectedRequestsTotal.Inc()
		c.JSON(http.StatusRequestEntityTooLarge, interpret.ErrorResponse{Error: msgDreamTooLarge})
		return
	}
	dream := strings.TrimSpace(raw)
	if dream == "" {
		rejectedRequestsTotal.Inc()
		c.JSON(http.StatusBadRequest, interpret.ErrorResponse{Error: msgDreamRequired})
		return
	}

	text, matches := h.catalog.Interpret(dream)
	result := "default"
	if len(matches) > 0 {
		result = "matched"
	}
	interpretationsTotal.WithLabelValues(result).Inc()
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		symbolMatchesTotal.WithLabelValues(m.Orisha).Inc()
		names = append(names, m.Orisha)
	}

	h.logger.Debug("dream interpreted",
		zap.Int("dream_length", len(dream)),
		zap.Strings("symbols", names),
	)
	c.JSON(http.StatusOK, interpret.Response{Interpretation: text})
}

// Health answers GET|HEAD /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// extractDream reads the dream from a JSON body. The "dream" query parameter
// is consulted only when no body parses; a parsed body with a blank dream stays
// blank. The error is non-nil only when the body exceeds maxBodyBytes.
func extractDream(c *gin.Context) (string, error) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	}

	var req interpret.Request
	err := c.ShouldBindJSON(&req)
	if err == nil {
		return req.Dream, nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "", err
	}
	return c.Query("dream"), nil
}
