package http

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
	"github.com/stewartad1/RapidEdge/internal/dxf/service"
)

// DXF uploads often come through as octet-stream from Swagger/curl.
var allowedContentTypes = map[string]bool{
	"application/dxf":          true,
	"image/vnd.dxf":            true,
	"application/octet-stream": true,
	"":                         true,
}

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Parse(c *gin.Context) {
	content, filename, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.svc.Parse(c.Request.Context(), content, filename)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Measure(c *gin.Context) {
	content, filename, ok := h.readUpload(c)
	if !ok {
		return
	}
	opts, ok := h.readOptions(c)
	if !ok {
		return
	}
	opts.Filename = filename

	report, err := h.svc.Measure(c.Request.Context(), content, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Inspect(c *gin.Context) {
	content, _, ok := h.readUpload(c)
	if !ok {
		return
	}
	opts, ok := h.readOptions(c)
	if !ok {
		return
	}

	insp, err := h.svc.Inspect(c.Request.Context(), content, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insp)
}

func (h *Handler) Render(c *gin.Context) {
	content, _, ok := h.readUpload(c)
	if !ok {
		return
	}
	png, err := h.svc.Render(c.Request.Context(), content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) RenderEntityBoxes(c *gin.Context) {
	content, _, ok := h.readUpload(c)
	if !ok {
		return
	}
	png, err := h.svc.RenderEntityBoxes(c.Request.Context(), content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) RenderComponentBoxes(c *gin.Context) {
	content, _, ok := h.readUpload(c)
	if !ok {
		return
	}
	opts, ok := h.readOptions(c)
	if !ok {
		return
	}
	png, err := h.svc.RenderComponentBoxes(c.Request.Context(), content, opts.JoinTolerance)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// readUpload pulls the multipart file out of the request and enforces the
// content-type allowlist. On failure it writes the response itself.
func (h *Handler) readUpload(c *gin.Context) (content []byte, filename string, ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return nil, "", false
	}
	if !allowedContentTypes[file.Header.Get("Content-Type")] {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported file type; please upload a DXF file."})
		return nil, "", false
	}

	content, err = readAll(file)
	if err != nil {
		log.Printf("[upload] read failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "reading upload failed"})
		return nil, "", false
	}
	return content, file.Filename, true
}

func (h *Handler) readOptions(c *gin.Context) (service.MeasureOptions, bool) {
	opts := service.MeasureOptions{
		// An absent unit form means "trust the document's units"; only an
		// explicit value overrides them.
		UnitOverride: c.PostForm("unit"),
	}

	tolStr := c.DefaultPostForm("join_tol", "0")
	tol, err := strconv.ParseFloat(tolStr, 64)
	if err != nil || tol < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "join_tol must be a non-negative number"})
		return opts, false
	}
	opts.JoinTolerance = tol
	return opts, true
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidUnit),
		errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrNoMeasurableGeometry):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
	default:
		log.Printf("[dxf] analysis failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}
