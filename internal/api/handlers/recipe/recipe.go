package recipe

import (
	"errors"
	"net/http"

	"recipe-manager/internal/api/middleware"
	recipeService "recipe-manager/internal/core/recipe"
	"recipe-manager/internal/core/store"
	"recipe-manager/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理器
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食譜處理器
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// SaveRecipeRequest 新增食譜的請求
type SaveRecipeRequest struct {
	Title           string              `json:"title" binding:"required"` // 食譜標題
	Description     string              `json:"description,omitempty"`
	CookTimeMinutes int                 `json:"cook_time_minutes,omitempty"`
	Servings        int                 `json:"servings,omitempty"`
	Difficulty      common.Difficulty   `json:"difficulty,omitempty"` // Easy / Medium / Hard
	Ingredients     []common.Ingredient `json:"ingredients,omitempty"`
}

// toRecipe 轉換為食譜記錄
func (r SaveRecipeRequest) toRecipe() common.Recipe {
	return common.Recipe{
		Title:           r.Title,
		Description:     r.Description,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		Ingredients:     r.Ingredients,
	}
}

// CheckDuplicateRequest 比對兩筆食譜內容的請求
type CheckDuplicateRequest struct {
	A common.Recipe `json:"a" binding:"required"`
	B common.Recipe `json:"b" binding:"required"`
}

// HandleSaveRecipe 新增食譜，與既有食譜重複時回傳 409
func (h *Handler) HandleSaveRecipe(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("無效的食譜請求",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	rec := req.toRecipe()
	rec.CreatedBy = middleware.CurrentIdentity(c).UserID

	saved, err := h.service.SaveRecipe(c.Request.Context(), rec)
	if err != nil {
		var dup *recipeService.DuplicateError
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{
				"error":          "Duplicate recipe",
				"code":           common.ErrDuplicateRecipe.Code,
				"original_title": dup.Report.OriginalTitle,
				"reason":         dup.Report.Reason,
			})
			return
		}
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
				"code":  common.ErrCodeInvalidRequest,
			})
			return
		}
		common.LogError("儲存食譜失敗",
			zap.Error(err),
			zap.String("標題", req.Title),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save recipe",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// HandleListRecipes 列出全部食譜
func (h *Handler) HandleListRecipes(c *gin.Context) {
	recipes, err := h.service.ListRecipes(c.Request.Context())
	if err != nil {
		common.LogError("列出食譜失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list recipes",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// HandleGetRecipe 讀取單筆食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	id := c.Param("id")

	rec, err := h.service.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Recipe not found",
				"code":  common.ErrRecipeNotFound.Code,
			})
			return
		}
		common.LogError("讀取食譜失敗",
			zap.Error(err),
			zap.String("id", id),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get recipe",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// HandleDeleteRecipe 刪除單筆食譜（管理員限定）
func (h *Handler) HandleDeleteRecipe(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Recipe not found",
				"code":  common.ErrRecipeNotFound.Code,
			})
			return
		}
		common.LogError("刪除食譜失敗",
			zap.Error(err),
			zap.String("id", id),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete recipe",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": id,
	})
}

// HandleCleanupDuplicates 對既有集合執行重複清理（管理員限定）
func (h *Handler) HandleCleanupDuplicates(c *gin.Context) {
	result, err := h.service.CleanupDuplicates(c.Request.Context())
	if err != nil {
		common.LogError("重複清理失敗", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to cleanup duplicates",
			"code":  common.ErrCodeInternalError,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleCheckDuplicate 比對兩筆食譜內容是否為同一道菜
func (h *Handler) HandleCheckDuplicate(c *gin.Context) {
	var req CheckDuplicateRequest
	if err := common.DecodeJSONStrict(c.Request.Body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"identical": h.service.CheckDuplicate(req.A, req.B),
	})
}
