package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"fundstack.backend/internal/domain/entities"
	"fundstack.backend/internal/interfaces/http/middleware"
	"fundstack.backend/internal/interfaces/http/response"
	"fundstack.backend/internal/usecases"
	"fundstack.backend/pkg/utils"
)

// StructureHandler handles structure hierarchy endpoints
type StructureHandler struct {
	structureUsecase *usecases.StructureUsecase
}

// NewStructureHandler creates a new structure handler
func NewStructureHandler(structureUsecase *usecases.StructureUsecase) *StructureHandler {
	return &StructureHandler{structureUsecase: structureUsecase}
}

// CreateStructure creates a structure node
// POST /api/v1/structures
func (h *StructureHandler) CreateStructure(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input entities.CreateStructureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	structure, err := h.structureUsecase.CreateStructure(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, structure)
}

// GetStructure returns a structure with fresh aggregates
// GET /api/v1/structures/:id
func (h *StructureHandler) GetStructure(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid structure id")
		return
	}

	structure, err := h.structureUsecase.GetStructure(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, structure)
}

// ListStructures lists structures matching the query filter
// GET /api/v1/structures?createdBy=&type=&parentId=&page=&limit=
func (h *StructureHandler) ListStructures(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var filter entities.StructureFilter
	if v := c.Query("createdBy"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid createdBy filter")
			return
		}
		filter.CreatedBy = &id
	}
	if v := c.Query("type"); v != "" {
		t := entities.StructureType(v)
		if !entities.ValidStructureType(t) {
			response.BadRequest(c, "invalid type filter")
			return
		}
		filter.Type = &t
	}
	if v := c.Query("parentId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid parentId filter")
			return
		}
		filter.ParentID = &id
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	pagination := utils.GetPaginationParams(page, limit)

	structures, total, err := h.structureUsecase.ListStructures(c.Request.Context(), actor, filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, structures, utils.CalculateMeta(total, pagination.Page, pagination.Limit))
}

// GetChildren returns the direct children of a structure
// GET /api/v1/structures/:id/children
func (h *StructureHandler) GetChildren(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid structure id")
		return
	}

	children, err := h.structureUsecase.FindChildren(c.Request.Context(), actor, parentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"structures": children})
}

// GetRoots returns the caller's parentless structures
// GET /api/v1/structures/roots
func (h *StructureHandler) GetRoots(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	roots, err := h.structureUsecase.FindRoots(c.Request.Context(), actor, actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"structures": roots})
}

// UpdateStructure updates structure metadata
// PUT /api/v1/structures/:id
func (h *StructureHandler) UpdateStructure(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid structure id")
		return
	}

	var input entities.UpdateStructureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	structure, err := h.structureUsecase.UpdateStructure(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, structure)
}

// UpdateFinancials replaces the financial rollup block of a structure
// PUT /api/v1/structures/:id/financials
func (h *StructureHandler) UpdateFinancials(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid structure id")
		return
	}

	var input entities.UpdateFinancialsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	structure, err := h.structureUsecase.UpdateFinancials(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, structure)
}

// DeleteStructure removes a structure node without cascading to children
// DELETE /api/v1/structures/:id
func (h *StructureHandler) DeleteStructure(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid structure id")
		return
	}

	if err := h.structureUsecase.DeleteStructure(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Structure deleted"})
}

// CreateInvestment records an investment into a structure
// POST /api/v1/investments
func (h *StructureHandler) CreateInvestment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input entities.CreateInvestmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	investment, err := h.structureUsecase.CreateInvestment(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, investment)
}
