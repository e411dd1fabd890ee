package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/branchledger/internal/apperrors"
	"github.com/SscSPs/branchledger/internal/core/domain"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/dto"
	"github.com/SscSPs/branchledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// mappingHandler handles HTTP requests related to GL mappings.
type mappingHandler struct {
	mappingService portssvc.MappingSvcFacade
}

func newMappingHandler(ms portssvc.MappingSvcFacade) *mappingHandler {
	return &mappingHandler{mappingService: ms}
}

// RegisterMappingRoutes registers the GL mapping routes on an authenticated group.
func RegisterMappingRoutes(rg *gin.RouterGroup, mappingService portssvc.MappingSvcFacade) {
	h := newMappingHandler(mappingService)

	mappings := rg.Group("/gl/mappings")
	{
		mappings.GET("", h.listMappings)
		mappings.POST("", h.createMapping)
		mappings.POST("/resolve", h.resolveMapping)
	}
}

// listMappings godoc
// @Summary List GL mappings
// @Description Lists the mappings of a service module in resolution order (priority, then creation time).
// @Tags mappings
// @Produce json
// @Param module query string true "Service module"
// @Param transactionType query string false "Transaction type"
// @Success 200 {object} dto.ListMappingsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list mappings"
// @Security BearerAuth
// @Router /gl/mappings [get]
func (h *mappingHandler) listMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMappingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	mappings, err := h.mappingService.ListMappings(c.Request.Context(), domain.ServiceModule(params.ServiceModule), params.TransactionType)
	if err != nil {
		respondError(c, logger, err, "Failed to list mappings")
		return
	}
	if mappings == nil {
		mappings = []domain.GLMapping{}
	}
	c.JSON(http.StatusOK, dto.ListMappingsResponse{Mappings: mappings})
}

// createMapping godoc
// @Summary Create a GL mapping
// @Description Registers a mapping from a (module, transaction type) pair onto debit and credit GL accounts. Admin only.
// @Tags mappings
// @Accept json
// @Produce json
// @Param mapping body dto.CreateMappingRequest true "Mapping details"
// @Success 201 {object} domain.GLMapping
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Mapping already exists"
// @Failure 500 {object} map[string]string "Failed to create mapping"
// @Security BearerAuth
// @Router /gl/mappings [post]
func (h *mappingHandler) createMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		logger.Error("Auth context not found in request context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.mappingService.CreateMapping(c.Request.Context(), auth, req.ToDomain())
	if err != nil {
		respondError(c, logger, err, "Failed to create mapping")
		return
	}

	logger.Info("GL mapping created", slog.String("mapping_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// resolveMapping godoc
// @Summary Resolve the GL mapping for a transaction
// @Description Returns the mapping a transaction with the given attributes would post through.
// @Tags mappings
// @Accept json
// @Produce json
// @Param request body dto.ResolveMappingRequest true "Transaction module, type and attributes"
// @Success 200 {object} domain.GLMapping
// @Failure 400 {object} map[string]string "Invalid input or undeclared attribute"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Branch outside the caller's scope"
// @Failure 404 {object} map[string]string "No mapping matches"
// @Failure 500 {object} map[string]string "Failed to resolve mapping"
// @Security BearerAuth
// @Router /gl/mappings/resolve [post]
func (h *mappingHandler) resolveMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResolveMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		logger.Error("Auth context not found in request context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	branchID := auth.BranchID
	if req.BranchID != "" {
		if !auth.IsAdmin() && req.BranchID != auth.BranchID {
			respondError(c, logger, apperrors.NewForbiddenError("branch outside caller scope"), "Failed to resolve mapping")
			return
		}
		branchID = req.BranchID
	}

	module := domain.ServiceModule(req.ServiceModule)
	attrs, err := domain.DecodeAttributes(module, req.Attributes)
	if err != nil {
		respondError(c, logger, apperrors.NewValidationError(err.Error()), "Failed to resolve mapping")
		return
	}

	mapping, err := h.mappingService.ResolveMapping(c.Request.Context(), module, req.TransactionType, branchID, attrs)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve mapping")
		return
	}
	c.JSON(http.StatusOK, mapping)
}
