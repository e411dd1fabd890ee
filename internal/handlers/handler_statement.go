package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/branchledger/internal/apperrors"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/dto"
	"github.com/SscSPs/branchledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler serves float statements.
type statementHandler struct {
	statementService portssvc.StatementSvc
}

// RegisterStatementRoutes registers the float statement route on an authenticated group.
func RegisterStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvc) {
	h := &statementHandler{statementService: statementService}
	rg.GET("/float-accounts/:float_account_id/statement", h.getFloatStatement)
}

// getFloatStatement godoc
// @Summary Float account statement
// @Description Merges the float's native ledger with its GL journal activity into one running-balance statement.
// @Tags statements
// @Produce json
// @Param float_account_id path string true "Float account ID"
// @Param startDate query string false "Start date (YYYY-MM-DD or RFC3339)"
// @Param endDate query string false "End date, inclusive (YYYY-MM-DD or RFC3339)"
// @Param branchId query string false "Branch filter"
// @Param includeGL query bool false "Include GL-derived rows (default true)"
// @Param transactionType query string false "Native transaction type filter"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Float account outside the caller's branch"
// @Failure 404 {object} map[string]string "Float account not found"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Security BearerAuth
// @Router /float-accounts/{float_account_id}/statement [get]
func (h *statementHandler) getFloatStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	floatAccountID := c.Param("float_account_id")
	logger = logger.With(slog.String("float_account_id", floatAccountID))

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}
	filters, err := params.ToFilters()
	if err != nil {
		respondError(c, logger, apperrors.NewValidationError(err.Error()), "Failed to build statement")
		return
	}

	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		logger.Error("Auth context not found in request context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	statement, err := h.statementService.BuildFloatStatement(c.Request.Context(), auth, floatAccountID, filters)
	if err != nil {
		respondError(c, logger, err, "Failed to build statement")
		return
	}

	logger.Debug("Float statement served", slog.Int("rows", len(statement.Entries)))
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement, filters))
}
