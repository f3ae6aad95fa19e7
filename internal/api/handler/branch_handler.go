package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

type BranchHandler struct {
	branchService ports.BranchService
}

func NewBranchHandler(branchService ports.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

type balanceResponse struct {
	BranchID string  `json:"branch_id"`
	Balance  float64 `json:"balance"`
}

// BranchOfUser returns the branch managed by the given user. A manager may
// only look up their own branch; treasury may look up anyone's.
func (h *BranchHandler) BranchOfUser(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	targetID := c.Param("id")
	if role != domain.RoleTreasury && targetID != userID {
		return domain.ErrForbidden
	}

	branch, err := h.branchService.BranchOfUser(c.Request().Context(), targetID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, branch)
}

// Balance returns a branch's current balance.
func (h *BranchHandler) Balance(c echo.Context) error {
	branchID := c.Param("id")
	balance, err := h.branchService.Balance(c.Request().Context(), branchID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{BranchID: branchID, Balance: balance})
}

// Transactions returns a branch's most recent cash movements.
func (h *BranchHandler) Transactions(c echo.Context) error {
	transactions, err := h.branchService.RecentTransactions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return c.JSON(http.StatusOK, transactions)
}
