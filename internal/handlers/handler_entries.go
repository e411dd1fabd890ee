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

// entryHandler handles HTTP requests that post, read and reverse journal entries.
type entryHandler struct {
	generator portssvc.JournalGeneratorSvc
	posting   portssvc.PostingSvc
	reversal  portssvc.ReversalSvc
}

func newEntryHandler(generator portssvc.JournalGeneratorSvc, posting portssvc.PostingSvc, reversal portssvc.ReversalSvc) *entryHandler {
	return &entryHandler{generator: generator, posting: posting, reversal: reversal}
}

// RegisterEntryRoutes registers journal entry and source transaction routes on an authenticated group.
func RegisterEntryRoutes(rg *gin.RouterGroup, generator portssvc.JournalGeneratorSvc, posting portssvc.PostingSvc, reversal portssvc.ReversalSvc) {
	h := newEntryHandler(generator, posting, reversal)

	entries := rg.Group("/gl/entries")
	{
		entries.POST("", h.postSourceTransaction)
		entries.GET("", h.listEntries)
		entries.POST("/custom", h.postCustomEntry)
		entries.POST("/purchases", h.postPurchaseEntry)
		entries.POST("/adjustments", h.postAdjustmentEntry)
		entries.POST("/payments", h.postPaymentEntry)
		entries.GET("/:entry_id", h.getEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}

	sources := rg.Group("/gl/sources/:module/:transaction_id")
	{
		sources.POST("/reverse", h.reverseSourceTransaction)
		sources.POST("/reclassify", h.reclassifySourceTransaction)
	}
}

// actor returns the authenticated user id or writes a 401.
func actor(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// postSourceTransaction godoc
// @Summary Post a business transaction
// @Description Resolves the GL mapping for a module transaction and posts the balanced entry. A positive fee posts through the "<type>_fee" mapping when one exists.
// @Tags entries
// @Accept json
// @Produce json
// @Param transaction body dto.PostSourceTransactionRequest true "Business transaction"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input, unmapped or unbalanced transaction"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "GL account not found"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/entries [post]
func (h *entryHandler) postSourceTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostSourceTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	txn, err := req.ToDomain()
	if err != nil {
		respondError(c, logger, apperrors.NewValidationError(err.Error()), "Failed to post transaction")
		return
	}

	logger = logger.With(slog.String("source", string(txn.ServiceModule)), slog.String("transaction_id", txn.ID))
	entry, err := h.posting.PostSourceTransaction(c.Request.Context(), txn, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	logger.Info("Source transaction posted", slog.String("entry_id", entry.ID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postCustomEntry godoc
// @Summary Post a custom journal entry
// @Description Posts an entry built from explicit debit and credit legs. Unbalanced legs are rejected.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateCustomEntryRequest true "Entry header and legs"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "GL account not found"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/entries/custom [post]
func (h *entryHandler) postCustomEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCustomEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	entry, err := h.posting.PostCustomEntry(c.Request.Context(), req.EntryHeaderRequest.ToDomain(), req.ToDomainLegs(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("Custom entry posted", slog.String("entry_id", entry.ID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postPurchaseEntry godoc
// @Summary Post a purchase
// @Description Debits inventory and credits the payment account, with an optional fee leg.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreatePurchaseEntryRequest true "Purchase"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/entries/purchases [post]
func (h *entryHandler) postPurchaseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePurchaseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	entry, err := h.generator.GeneratePurchase(req.EntryHeaderRequest.ToDomain(), req.InventoryAccountID, req.PaymentAccountID, req.Amount, req.FeeAccountID, req.Fee)
	if err != nil {
		respondError(c, logger, err, "Failed to post purchase")
		return
	}
	h.postPrepared(c, logger, entry, userID)
}

// postAdjustmentEntry godoc
// @Summary Post an adjustment
// @Description Posts the difference between an old and a new amount. An increase debits the first account; a decrease flips the sides.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreateAdjustmentEntryRequest true "Adjustment"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or no difference"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/entries/adjustments [post]
func (h *entryHandler) postAdjustmentEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAdjustmentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	entry, err := h.generator.GenerateAdjustment(req.EntryHeaderRequest.ToDomain(), req.DebitOnIncreaseAccountID, req.CreditOnIncreaseAccountID, req.OldAmount, req.NewAmount)
	if err != nil {
		respondError(c, logger, err, "Failed to post adjustment")
		return
	}
	h.postPrepared(c, logger, entry, userID)
}

// postPaymentEntry godoc
// @Summary Post a payment
// @Description Debits the payable and credits cash.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry body dto.CreatePaymentEntryRequest true "Payment"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/entries/payments [post]
func (h *entryHandler) postPaymentEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	entry, err := h.generator.GeneratePayment(req.EntryHeaderRequest.ToDomain(), req.PayableAccountID, req.CashAccountID, req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to post payment")
		return
	}
	h.postPrepared(c, logger, entry, userID)
}

func (h *entryHandler) postPrepared(c *gin.Context, logger *slog.Logger, entry *domain.JournalEntry, userID string) {
	posted, err := h.posting.PostPrepared(c.Request.Context(), entry, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post entry")
		return
	}
	logger.Info("Entry posted", slog.String("entry_id", posted.ID), slog.String("transaction_type", posted.TransactionType))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(posted))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry and its lines by ID
// @Tags entries
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /gl/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	entry, err := h.posting.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with token-based pagination
// @Tags entries
// @Produce json
// @Param source query string false "Source module"
// @Param transactionId query string false "Source transaction ID"
// @Param branchId query string false "Branch ID"
// @Param status query string false "Entry status" Enums(pending, posted, reversed)
// @Param limit query int false "Maximum entries (default 20, max 100)"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /gl/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err)
		return
	}

	entries, next, err := h.posting.ListEntries(c.Request.Context(), params.Filter(), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToJournalEntryResponses(entries), NextToken: next})
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror image of a posted entry and marks the original reversed.
// @Tags entries
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param request body dto.ReverseRequest true "Reversal reason"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed or not reversible"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/entries/{entry_id}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entry_id")

	var req dto.ReverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))
	reversal, err := h.reversal.ReverseEntry(c.Request.Context(), entryID, req.ToDomain(userID))
	if err != nil {
		respondError(c, logger, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed", slog.String("reversal_id", reversal.ID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// reverseSourceTransaction godoc
// @Summary Reverse a business transaction's posting
// @Description Reverses the live posting of a module transaction. Ledger problems never fail the call; they come back as a warning.
// @Tags sources
// @Accept json
// @Produce json
// @Param module path string true "Service module"
// @Param transaction_id path string true "Source transaction ID"
// @Param request body dto.ReverseRequest true "Reversal reason"
// @Success 200 {object} dto.ReversalOutcomeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /gl/sources/{module}/{transaction_id}/reverse [post]
func (h *entryHandler) reverseSourceTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := domain.ServiceModule(c.Param("module"))
	transactionID := c.Param("transaction_id")

	if !module.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown service module " + string(module)})
		return
	}
	var req dto.ReverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	outcome := h.reversal.ReverseSourceTransaction(c.Request.Context(), module, transactionID, req.ToDomain(userID))
	if outcome.Warning != "" {
		logger.Warn("Source transaction reversal completed with warning",
			slog.String("source", string(module)),
			slog.String("transaction_id", transactionID),
			slog.String("warning", outcome.Warning))
	}
	c.JSON(http.StatusOK, dto.ToReversalOutcomeResponse(outcome))
}

// reclassifySourceTransaction godoc
// @Summary Reclassify a business transaction
// @Description Reverses the live posting of a module transaction and posts the corrected transaction in its place.
// @Tags sources
// @Accept json
// @Produce json
// @Param module path string true "Service module"
// @Param transaction_id path string true "Source transaction ID"
// @Param request body dto.ReclassifyRequest true "Reason and corrected transaction"
// @Success 201 {object} dto.ReclassifyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Posting failed"
// @Security BearerAuth
// @Router /gl/sources/{module}/{transaction_id}/reclassify [post]
func (h *entryHandler) reclassifySourceTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	module := c.Param("module")
	transactionID := c.Param("transaction_id")

	var req dto.ReclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	if req.Transaction.ServiceModule != module || req.Transaction.TransactionID != transactionID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction module and id must match the path"})
		return
	}
	userID, ok := actor(c, logger)
	if !ok {
		return
	}

	txn, err := req.Transaction.ToDomain()
	if err != nil {
		respondError(c, logger, apperrors.NewValidationError(err.Error()), "Failed to reclassify transaction")
		return
	}

	reversalReq := domain.ReversalRequest{Reason: req.Reason, Actor: userID, OriginalSettled: req.OriginalSettled}
	result, err := h.reversal.ReclassifySourceTransaction(c.Request.Context(), txn, reversalReq)
	if err != nil {
		respondError(c, logger, err, "Failed to reclassify transaction")
		return
	}

	logger.Info("Source transaction reclassified",
		slog.String("source", module),
		slog.String("transaction_id", transactionID),
		slog.String("entry_id", result.Entry.ID))
	c.JSON(http.StatusCreated, dto.ToReclassifyResponse(result))
}
