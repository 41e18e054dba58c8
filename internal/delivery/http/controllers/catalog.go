package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"CourseForge/pkg/logger"
)

type CatalogSearcher interface {
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type CatalogHandler struct {
	log     logger.Log
	catalog CatalogSearcher
}

func NewCatalogHandler(l logger.Log, catalog CatalogSearcher) *CatalogHandler {
	return &CatalogHandler{log: l, catalog: catalog}
}

// SearchCourses finds published courses by free-text query.
func (h *CatalogHandler) SearchCourses(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	ids, err := h.catalog.Search(c.Request.Context(), query, size)
	if err != nil {
		h.log.ErrorErr("catalog search failed", err, "query", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"course_ids": ids})
}
