package handler

import (
	"github.com/gin-gonic/gin"
	analysisapp "github.com/rebechilabs/tributalks/internal/application/analysis"
)

// BenchmarkHandler exposes sector benchmark reference data
type BenchmarkHandler struct {
	BaseHandler
	service *analysisapp.Service
}

// NewBenchmarkHandler creates a new BenchmarkHandler
func NewBenchmarkHandler(service *analysisapp.Service) *BenchmarkHandler {
	return &BenchmarkHandler{service: service}
}

// RegisterRoutes registers benchmark routes on the API group
func (h *BenchmarkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/benchmarks/:sector", h.Get)
}

// Get returns the benchmark for a sector. Unknown sectors answer with the
// generic fallback benchmark rather than 404.
func (h *BenchmarkHandler) Get(c *gin.Context) {
	bm := h.service.GetBenchmark(c.Request.Context(), c.Param("sector"))
	h.Success(c, bm)
}
