package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/opsdesk/requisition_backend/internal/adapters/storage"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/dto"
	"github.com/opsdesk/requisition_backend/internal/middleware"
)

// maxAttachments caps the number of files accepted on creation.
const maxAttachments = 5

// validate checks binding tags on payloads that arrive inside a multipart
// field and so bypass gin's built-in binding.
var validate = newBindingValidator()

func newBindingValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// requisitionHandler handles HTTP requests for internal requisitions.
type requisitionHandler struct {
	requisitionService portssvc.RequisitionSvcFacade
	attachmentStore    storage.AttachmentStore
}

func newRequisitionHandler(rs portssvc.RequisitionSvcFacade, store storage.AttachmentStore) *requisitionHandler {
	return &requisitionHandler{
		requisitionService: rs,
		attachmentStore:    store,
	}
}

// registerRequisitionRoutes registers all requisition routes on the
// authenticated group.
func registerRequisitionRoutes(rg *gin.RouterGroup, rs portssvc.RequisitionSvcFacade, store storage.AttachmentStore) {
	h := newRequisitionHandler(rs, store)

	requisitions := rg.Group("/internal-requisitions")
	{
		requisitions.POST("/create", h.createRequisition)
		requisitions.GET("/list", h.listRequisitions)
		requisitions.GET("/:id", h.getRequisition)
		requisitions.PUT("/:id/status", h.updateStatus)
		requisitions.DELETE("/:id", h.deleteRequisition)
	}
}

// createRequisition godoc
// @Summary Create a new internal requisition
// @Description Creates a requisition from a multipart payload: the "data" field carries the JSON document, "attachments" up to 5 files
// @Tags requisitions
// @Accept  multipart/form-data
// @Produce  json
// @Param   data formData string true "Requisition JSON"
// @Param   attachments formData file false "Attachments (max 5)"
// @Success 201 {object} domain.Requisition
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create requisition"
// @Security BearerAuth
// @Router /internal-requisitions/create [post]
func (h *requisitionHandler) createRequisition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		logger.Error("Principal not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payload := c.PostForm("data")
	if payload == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data field"})
		return
	}

	var req dto.CreateRequisitionRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		logger.Warn("Failed to parse requisition payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := validate.Struct(&req); err != nil {
		logger.Warn("Requisition payload failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}
	files := form.File["attachments"]
	if len(files) > maxAttachments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At most 5 attachments allowed"})
		return
	}

	attachments := make([]string, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable attachment: " + fileHeader.Filename})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable attachment: " + fileHeader.Filename})
			return
		}
		path, err := h.attachmentStore.Save(fileHeader.Filename, data)
		if err != nil {
			logger.Error("Failed to store attachment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
			return
		}
		attachments = append(attachments, path)
	}

	logger.Info("Received request to create requisition", slog.String("title", req.Title))

	created, err := h.requisitionService.CreateRequisition(c.Request.Context(), req, attachments, principal)
	if err != nil {
		logger.Error("Failed to create requisition", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Requisition created", slog.String("requisition_number", created.RequisitionNumber))
	c.JSON(http.StatusCreated, created)
}

// listRequisitions godoc
// @Summary List requisitions visible to the caller
// @Description Finance and Admin principals see all requisitions; others only their own
// @Tags requisitions
// @Produce  json
// @Success 200 {object} dto.ListRequisitionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /internal-requisitions/list [get]
func (h *requisitionHandler) listRequisitions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requisitions, err := h.requisitionService.ListRequisitions(c.Request.Context(), principal)
	if err != nil {
		logger.Error("Failed to list requisitions", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListRequisitionsResponse{Requisitions: requisitions})
}

// getRequisition godoc
// @Summary Get a requisition by ID
// @Tags requisitions
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Success 200 {object} domain.Requisition
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /internal-requisitions/{id} [get]
func (h *requisitionHandler) getRequisition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requisition, err := h.requisitionService.GetRequisitionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		logger.Warn("Failed to get requisition", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requisition)
}

// updateStatus godoc
// @Summary Update a requisition's status
// @Description Applies the status transition for the acting principal; approvals from finance or Admin stamp approvedByFinance
// @Tags requisitions
// @Accept  json
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Param   body body dto.UpdateRequisitionStatusRequest true "Requested status and optional comment"
// @Success 200 {object} dto.RequisitionStatusResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /internal-requisitions/{id}/status [put]
func (h *requisitionHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	principal, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateRequisitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind status update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, message, err := h.requisitionService.ApplyStatusChange(c.Request.Context(), c.Param("id"), req.Status, principal, req.Comment)
	if err != nil {
		logger.Error("Failed to update requisition status", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Requisition status updated",
		slog.String("requisition_number", updated.RequisitionNumber),
		slog.String("status", string(updated.Status)),
	)
	c.JSON(http.StatusOK, dto.RequisitionStatusResponse{Message: message, Data: *updated})
}

// deleteRequisition godoc
// @Summary Delete a requisition
// @Tags requisitions
// @Produce  json
// @Param   id path string true "Requisition ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /internal-requisitions/{id} [delete]
func (h *requisitionHandler) deleteRequisition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.requisitionService.DeleteRequisition(c.Request.Context(), c.Param("id")); err != nil {
		logger.Warn("Failed to delete requisition", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Requisition deleted"})
}
