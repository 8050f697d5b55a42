package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// GroupHandler handles bill-splitting group requests
type GroupHandler struct {
	groupService services.GroupServicer
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService services.GroupServicer) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// SplitExpenseRequest represents one shared expense within a group.
type SplitExpenseRequest struct {
	Description string  `json:"description" binding:"required,max=200"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PaidBy      string  `json:"paid_by" binding:"required"`
}

// CreateGroupRequest represents a new split group payload.
type CreateGroupRequest struct {
	Name     string                `json:"name" binding:"required,max=100"`
	Members  []string              `json:"members" binding:"required,min=1"`
	Expenses []SplitExpenseRequest `json:"expenses"`
}

func (r CreateGroupRequest) inputs() []services.SplitExpenseInput {
	inputs := make([]services.SplitExpenseInput, 0, len(r.Expenses))
	for _, e := range r.Expenses {
		inputs = append(inputs, services.SplitExpenseInput{
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
		})
	}
	return inputs
}

// CreateGroup creates a new split group
// @Summary     Create split group
// @Description Create a bill-splitting group with its members and optional initial expenses
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGroupRequest true "Group data"
// @Success     201 {object} models.SplitGroup "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(userID, req.Name, req.Members, req.inputs())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// ListGroups returns the user's split groups
// @Summary     List split groups
// @Description List the authenticated user's split groups, newest first
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.SplitGroup "Groups"
// @Router      /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groups, err := h.groupService.GetUserGroups(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup returns one split group
// @Summary     Get split group
// @Description Get a split group with its shared expenses
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     200 {object} models.SplitGroup "Group"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	group, err := h.groupService.GetGroupByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// AddGroupExpense appends a shared expense to a group
// @Summary     Add shared expense
// @Description Append a shared expense to an existing split group
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Param       request body SplitExpenseRequest true "Shared expense"
// @Success     200 {object} models.SplitGroup "Updated group"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id}/expenses [post]
func (h *GroupHandler) AddGroupExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SplitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.AddGroupExpense(userID, c.Param("id"), services.SplitExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup removes a split group
// @Summary     Delete split group
// @Description Delete a split group and its shared expenses
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     204 "Group deleted"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.groupService.DeleteGroup(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetShares returns the equal-split shares for a group
// @Summary     Get group shares
// @Description Compute the equal per-member share of the group's total
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Group ID"
// @Success     200 {object} split.Result "Shares"
// @Failure     400 {object} ErrorResponse "Group has no members"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /groups/{id}/shares [get]
func (h *GroupHandler) GetShares(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.groupService.GetShares(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": result})
}
