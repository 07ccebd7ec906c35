package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"fundstack.backend/internal/domain/entities"
	"fundstack.backend/internal/interfaces/http/middleware"
	"fundstack.backend/internal/interfaces/http/response"
	"fundstack.backend/internal/usecases"
	"fundstack.backend/pkg/utils"
)

// SmartContractHandler handles tokenization contract endpoints
type SmartContractHandler struct {
	contractUsecase *usecases.ContractUsecase
}

// NewSmartContractHandler creates a new smart contract handler
func NewSmartContractHandler(contractUsecase *usecases.ContractUsecase) *SmartContractHandler {
	return &SmartContractHandler{contractUsecase: contractUsecase}
}

// CreateContract creates a tokenization record
// POST /api/v1/smart-contracts
func (h *SmartContractHandler) CreateContract(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input entities.CreateSmartContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contractUsecase.CreateContract(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, contract)
}

// GetContract returns a contract record
// GET /api/v1/smart-contracts/:id
func (h *SmartContractHandler) GetContract(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contract id")
		return
	}

	contract, err := h.contractUsecase.GetContract(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contract)
}

// ListContracts lists contract records
// GET /api/v1/smart-contracts?structureId=&status=&page=&limit=
func (h *SmartContractHandler) ListContracts(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var filter entities.SmartContractFilter
	if v := c.Query("structureId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid structureId filter")
			return
		}
		filter.StructureID = &id
	}
	if v := c.Query("status"); v != "" {
		status := entities.DeploymentStatus(strings.ToUpper(v))
		if !entities.ValidDeploymentStatus(status) {
			response.BadRequest(c, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	pagination := utils.GetPaginationParams(page, limit)

	contracts, total, err := h.contractUsecase.ListContracts(c.Request.Context(), actor, filter, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, contracts, utils.CalculateMeta(total, pagination.Page, pagination.Limit))
}

// UpdateContract updates token metadata in any deployment state
// PUT /api/v1/smart-contracts/:id
func (h *SmartContractHandler) UpdateContract(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contract id")
		return
	}

	var input entities.UpdateSmartContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contractUsecase.UpdateContract(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contract)
}

// UpdateStatus applies a deployment status transition
// PATCH /api/v1/smart-contracts/:id/status
func (h *SmartContractHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contract id")
		return
	}

	var input entities.UpdateDeploymentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contract, err := h.contractUsecase.UpdateStatus(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contract)
}

// DeleteContract soft deletes a contract record
// DELETE /api/v1/smart-contracts/:id
func (h *SmartContractHandler) DeleteContract(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid contract id")
		return
	}

	if err := h.contractUsecase.DeleteContract(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Smart contract deleted"})
}
