package handlers

import (
	"net/http"
	"strconv"

	"tadreeb/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler serves the course and lesson catalog through the list cache.
type CatalogHandler struct {
	Catalog *catalog.Service
	Logger  *zap.Logger
}

func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Catalog: svc, Logger: logger}
}

func listParams(c *gin.Context) (lang string, page, pageSize int) {
	lang = c.DefaultQuery("lang", "en")
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if pageSize < 1 {
		pageSize = 10
	}
	return lang, page, pageSize
}

// GetCourses handles GET /api/catalog/courses.
func (h *CatalogHandler) GetCourses(c *gin.Context) {
	lang, page, pageSize := listParams(c)
	result, err := h.Catalog.Courses(c.Request.Context(), lang, page, pageSize)
	if err != nil {
		h.Logger.Error("GetCourses: fetch failed", zap.String("lang", lang), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch courses", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLessons handles GET /api/catalog/lessons.
func (h *CatalogHandler) GetLessons(c *gin.Context) {
	lang, page, pageSize := listParams(c)
	result, err := h.Catalog.Lessons(c.Request.Context(), lang, page, pageSize)
	if err != nil {
		h.Logger.Error("GetLessons: fetch failed", zap.String("lang", lang), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch private lessons", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLessonOptions handles GET /api/catalog/lessons/:lessonID/options.
func (h *CatalogHandler) GetLessonOptions(c *gin.Context) {
	lessonID := c.Param("lessonID")
	options, err := h.Catalog.LessonOptions(c.Request.Context(), lessonID)
	if err != nil {
		h.Logger.Error("GetLessonOptions: fetch failed", zap.String("lessonID", lessonID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch lesson options", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": options})
}

// GetConsultationTypes handles GET /api/catalog/consultations.
func (h *CatalogHandler) GetConsultationTypes(c *gin.Context) {
	lang := c.DefaultQuery("lang", "en")
	types, err := h.Catalog.ConsultationTypes(c.Request.Context(), lang)
	if err != nil {
		h.Logger.Error("GetConsultationTypes: fetch failed", zap.String("lang", lang), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch consultation types", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": types})
}
