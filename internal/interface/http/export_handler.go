package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-summarizer/internal/infra/export"
)

// ExportTXT returns the posted summary as a text attachment.
func (h *Handler) ExportTXT(c *gin.Context) {
	data, err := export.TXT(c.PostForm("summary_text"))
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	attach(c, "summary.txt", "text/plain; charset=utf-8", data)
}

// ExportPDF renders the posted summary into a PDF attachment.
func (h *Handler) ExportPDF(c *gin.Context) {
	data, err := export.PDF(c.PostForm("summary_text"))
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	attach(c, "summary.pdf", "application/pdf", data)
}

func (h *Handler) exportFailed(c *gin.Context, err error) {
	if errors.Is(err, export.ErrEmptySummary) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No summary to export"})
		return
	}
	h.logger.Error("export failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export: " + err.Error()})
}

func attach(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
