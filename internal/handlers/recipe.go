package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/recipevault/recipevault/db"
	"github.com/recipevault/recipevault/internal/logger"
	"github.com/recipevault/recipevault/internal/models"
	"github.com/recipevault/recipevault/internal/store"
	"github.com/recipevault/recipevault/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AttrInput struct {
	Name string `json:"name" binding:"required"`
}

type CreateRecipeRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	TimeMinutes *int            `json:"time_minutes" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Link        string          `json:"link"`
	Tags        []AttrInput     `json:"tags"`
	Ingredients []AttrInput     `json:"ingredients"`
}

// UpdateRecipeRequest distinguishes absent fields from zero values. The
// owning user is not bindable at all, so payloads naming it are ignored.
type UpdateRecipeRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link"`
	Tags        *[]AttrInput     `json:"tags"`
	Ingredients *[]AttrInput     `json:"ingredients"`
}

type RecipeSummary struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
}

type AttrResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type RecipeDetail struct {
	RecipeSummary
	Description string         `json:"description"`
	Tags        []AttrResponse `json:"tags"`
	Ingredients []AttrResponse `json:"ingredients"`
}

// RecipeHandler serves the recipe routes, all scoped to the caller.
type RecipeHandler struct{}

func (RecipeHandler) store() store.RecipeStore {
	return store.NewRecipeStore(db.DB)
}

func (h RecipeHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipes, err := h.store().ListByOwner(userID)

	if err != nil {
		logger.Log.Error("listing recipes", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	response := make([]RecipeSummary, 0, len(recipes))

	for _, recipe := range recipes {
		response = append(response, newRecipeSummary(recipe))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h RecipeHandler) Retrieve(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	recipe, err := h.store().GetByOwner(userID, recipeID)

	if err != nil {
		respondRecipeLookupError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newRecipeDetail(recipe))
}

func (h RecipeHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateRecipeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	recipe := models.Recipe{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: *req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		UserID:      userID,
	}

	if err := h.store().Create(&recipe, attrNames(req.Tags), attrNames(req.Ingredients)); err != nil {
		logger.Log.Error("creating recipe", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	created, err := h.store().GetByOwner(userID, recipe.ID)

	if err != nil {
		logger.Log.Error("reloading recipe", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	ctx.JSON(http.StatusCreated, newRecipeDetail(created))
}

func (h RecipeHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	recipe, err := h.store().GetByOwner(userID, recipeID)

	if err != nil {
		respondRecipeLookupError(ctx, err)
		return
	}

	var req UpdateRecipeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	var tagNames, ingredientNames *[]string

	if req.Tags != nil {
		names := attrNames(*req.Tags)
		tagNames = &names
	}

	if req.Ingredients != nil {
		names := attrNames(*req.Ingredients)
		ingredientNames = &names
	}

	if err := h.store().Update(&recipe, tagNames, ingredientNames); err != nil {
		logger.Log.Error("updating recipe", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	updated, err := h.store().GetByOwner(userID, recipe.ID)

	if err != nil {
		logger.Log.Error("reloading recipe", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	ctx.JSON(http.StatusOK, newRecipeDetail(updated))
}

func (h RecipeHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipeID, ok := parseID(ctx)

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := h.store().Delete(userID, recipeID); err != nil {
		respondRecipeLookupError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func respondRecipeLookupError(ctx *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	logger.Log.Error("retrieving recipe", zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)

	if err != nil {
		return 0, false
	}

	return uint(id), true
}

func attrNames(attrs []AttrInput) []string {
	names := make([]string, 0, len(attrs))

	for _, attr := range attrs {
		names = append(names, attr.Name)
	}

	return names
}

func newRecipeSummary(recipe models.Recipe) RecipeSummary {
	return RecipeSummary{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
	}
}

func newRecipeDetail(recipe models.Recipe) RecipeDetail {
	detail := RecipeDetail{
		RecipeSummary: newRecipeSummary(recipe),
		Description:   recipe.Description,
		Tags:          make([]AttrResponse, 0, len(recipe.Tags)),
		Ingredients:   make([]AttrResponse, 0, len(recipe.Ingredients)),
	}

	for _, tag := range recipe.Tags {
		detail.Tags = append(detail.Tags, AttrResponse{ID: tag.ID, Name: tag.Name})
	}

	for _, ingredient := range recipe.Ingredients {
		detail.Ingredients = append(detail.Ingredients, AttrResponse{ID: ingredient.ID, Name: ingredient.Name})
	}

	return detail
}
