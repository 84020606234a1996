package http

import "github.com/gin-gonic/gin"

// Register mounts the drawing-analysis routes on the given router group.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1/dxf")

	v1.POST("/parse", h.Parse)
	v1.POST("/measure", h.Measure)
	v1.POST("/inspect", h.Inspect)

	v1.POST("/render", h.Render)
	v1.POST("/render/entity-boxes", h.RenderEntityBoxes)
	v1.POST("/render/component-boxes", h.RenderComponentBoxes)

	v1.GET("/history", h.History)
}
