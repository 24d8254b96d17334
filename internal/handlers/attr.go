package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipevault/recipevault/db"
	"github.com/recipevault/recipevault/internal/logger"
	"github.com/recipevault/recipevault/internal/store"
	"github.com/recipevault/recipevault/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttrHandler serves the tag and ingredient routes. Both resources share the
// same list/create/rename/delete behavior, so one handler runs against
// whichever store it is built with.
type AttrHandler struct {
	resource string
	store    func() store.AttrStore
}

func NewTagHandler() AttrHandler {
	return AttrHandler{
		resource: "Tag",
		store:    func() store.AttrStore { return store.NewTagStore(db.DB) },
	}
}

func NewIngredientHandler() AttrHandler {
	return AttrHandler{
		resource: "Ingredient",
		store:    func() store.AttrStore { return store.NewIngredientStore(db.DB) },
	}
}

func (h AttrHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attrs, err := h.store().ListByOwner(userID)

	if err != nil {
		logger.Log.Error("listing attrs", zap.String("resource", h.resource), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve records"})
		return
	}

	response := make([]AttrResponse, 0, len(attrs))

	for _, attr := range attrs {
		response = append(response, AttrResponse{ID: attr.ID, Name: attr.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h AttrHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AttrInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	attr, err := h.store().GetOrCreate(userID, req.Name)

	if err != nil {
		logger.Log.Error("creating attr", zap.String("resource", h.resource), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create record"})
		return
	}

	ctx.JSON(http.StatusCreated, AttrResponse{ID: attr.ID, Name: attr.Name})
}

func (h AttrHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attrID, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": h.resource + " not found"})
		return
	}

	var req AttrInput

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	attr, err := h.store().Rename(userID, attrID, req.Name)

	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name already in use"})
			return
		}
		h.respondLookupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, AttrResponse{ID: attr.ID, Name: attr.Name})
}

func (h AttrHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	attrID, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": h.resource + " not found"})
		return
	}

	if err := h.store().Delete(userID, attrID); err != nil {
		h.respondLookupError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h AttrHandler) respondLookupError(ctx *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": h.resource + " not found"})
		return
	}

	logger.Log.Error("retrieving attr", zap.String("resource", h.resource), zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
}
