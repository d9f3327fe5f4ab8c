package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"archreview/internal/auth"
	"archreview/internal/capability"
	"archreview/internal/models"
	"archreview/internal/service/document"
	"archreview/internal/service/insights"
	"archreview/internal/storage"
)

// Handler wires HTTP routes to the document, insights, and tool services.
type Handler struct {
	documents *document.Service
	insights  *insights.Service
	tools     *capability.Registry
	auth      *auth.Service
	// local serves the in-memory stand-in upload/download routes; nil outside
	// local mode.
	local *storage.MemoryObjectStore
}

// NewHandler constructs a Handler instance. The insights service and auth
// service may be nil when not configured; local is nil outside local mode.
func NewHandler(docs *document.Service, embed *insights.Service, authService *auth.Service, local *storage.MemoryObjectStore) *Handler {
	return &Handler{
		documents: docs,
		insights:  embed,
		tools:     capability.NewRegistry(docs),
		auth:      authService,
		local:     local,
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))

	routes := gin.IRoutes(router)
	if h.auth != nil {
		group := router.Group("")
		group.Use(h.auth.Middleware())
		routes = group
	}

	routes.POST("/documents/upload-url", h.createUploadURL)
	routes.POST("/documents/metadata", h.saveMetadata)
	routes.GET("/documents", h.listDocuments)
	routes.GET("/documents/search", h.searchDocuments)
	routes.PUT("/documents/review", h.updateReview)
	routes.GET("/documents/review/:id", h.getReview)
	routes.GET("/documents/:id", h.getDocument)
	routes.DELETE("/documents/:id", h.deleteDocument)
	routes.POST("/documents/:id/diagram", h.generateDiagram)
	routes.GET("/insights/embed-url", h.embedURL)
	routes.GET("/tools", h.listTools)
	routes.POST("/tools/:name", h.callTool)

	// Local-mode presigned URLs point back at these two routes. Kept outside
	// the auth group so raw PUTs from a browser upload widget work unchanged.
	if h.local != nil {
		router.PUT("/local-upload", h.localUpload)
		router.GET("/local-object", h.localObject)
	}
}

func (h *Handler) createUploadURL(c *gin.Context) {
	var req models.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": document.MsgMissingUploadFields})
		return
	}
	resp, err := h.documents.IssueUploadCredential(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) saveMetadata(c *gin.Context) {
	var req models.SaveMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": document.MsgMissingMetadataFields})
		return
	}
	doc, err := h.documents.CommitMetadata(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Document metadata saved successfully",
		"documentId": doc.DocumentID,
	})
}

func (h *Handler) listDocuments(c *gin.Context) {
	page := 1
	limit := models.DefaultPageSize
	var err error
	if v := c.Query("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": document.MsgInvalidPage})
			return
		}
	}
	if v := c.Query("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": document.MsgInvalidLimit})
			return
		}
	}
	resp, err := h.documents.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) searchDocuments(c *gin.Context) {
	resp, err := h.documents.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getDocument(c *gin.Context) {
	resp, err := h.documents.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteDocument(c *gin.Context) {
	documentID := c.Param("id")
	if err := h.documents.Delete(c.Request.Context(), documentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Document deleted successfully",
		"documentId": documentID,
	})
}

// updateReview carries the document id in the body alongside the patch, so
// the route has no path parameter.
type updateReviewRequest struct {
	DocumentID string `json:"documentId"`
	models.ReviewPatch
}

func (h *Handler) updateReview(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": document.MsgMissingDocumentID})
		return
	}
	doc, err := h.documents.UpdateReview(c.Request.Context(), req.DocumentID, req.ReviewPatch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Review updated successfully",
		"document": doc,
	})
}

func (h *Handler) getReview(c *gin.Context) {
	resp, err := h.documents.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) generateDiagram(c *gin.Context) {
	var req struct {
		DiagramType string `json:"diagramType"`
		Description string `json:"description"`
	}
	// Body is optional; an empty or absent body means the generic template.
	_ = c.ShouldBindJSON(&req)
	resp, err := h.documents.GenerateDiagram(c.Request.Context(), c.Param("id"), req.DiagramType, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) embedURL(c *gin.Context) {
	if h.insights == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuration Error", "message": "Insights embedding is not configured."})
		return
	}
	resp, err := h.insights.GenerateEmbedURL(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.tools.List()})
}

func (h *Handler) callTool(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body."})
		return
	}
	result, err := h.tools.Call(c.Request.Context(), c.Param("name"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) localUpload(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "key is required"})
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "Invalid request body."})
		return
	}
	contentType := c.ContentType()
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.local.Put(c.Request.Context(), key, body, contentType); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) localObject(c *gin.Context) {
	key := c.Query("key")
	body, err := h.local.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	contentType, ok := h.local.ContentType(key)
	if !ok || contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, body)
}

// respondError maps service errors onto the stable {error, message} body.
func respondError(c *gin.Context, err error) {
	var badReq *document.BadRequestError
	var validation *document.ValidationError
	var cfgErr *insights.ConfigurationError
	var unknownTool *capability.ErrUnknownTool

	switch {
	case errors.As(err, &badReq):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": badReq.Message})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Error", "message": validation.Message})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "Document not found."})
	case errors.Is(err, storage.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": "Review not found."})
	case errors.As(err, &unknownTool):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found", "message": unknownTool.Error()})
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Configuration Error", "message": cfgErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "message": "An unexpected error occurred."})
	}
}
