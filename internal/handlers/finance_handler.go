package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// FinanceHandler lê o razão financeiro. O agendamento só insere receitas;
// aqui fica a consulta.
type FinanceHandler struct {
	db *gorm.DB
}

func NewFinanceHandler(db *gorm.DB) *FinanceHandler {
	return &FinanceHandler{db: db}
}

func (h *FinanceHandler) ListTransactions(c *gin.Context) {
	q := h.db.Model(&models.Transaction{})

	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC, created_at DESC").Find(&txs).Error; err != nil {
		httperr.Internal(c, "transactions_failed", "Erro ao listar transações.")
		return
	}

	var income, expense float64
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			income += tx.Amount
		case models.TransactionExpense:
			expense += tx.Amount
		}
	}

	c.JSON(200, gin.H{
		"transactions":  txs,
		"total_income":  income,
		"total_expense": expense,
		"balance":       income - expense,
	})
}

// ListByMonth agrega as transações de um mês. O filtro usa o prefixo
// AAAA-MM da coluna date.
func (h *FinanceHandler) ListByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	var txs []models.Transaction
	if err := h.db.
		Where("date LIKE ?", prefix+"%").
		Order("date ASC").
		Find(&txs).Error; err != nil {
		httperr.Internal(c, "transactions_failed", "Erro ao listar transações.")
		return
	}

	var income float64
	for _, tx := range txs {
		if tx.Type == models.TransactionIncome {
			income += tx.Amount
		}
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"transactions": txs,
		"total_income": income,
	})
}
