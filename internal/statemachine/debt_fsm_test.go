package statemachine

import (
	"context"
	"testing"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtFSM_ApplyPartial(t *testing.T) {
	debt := &models.DebtItem{Status: models.DebtStatusPending}
	dfsm := NewDebtFSM(debt)

	err := dfsm.ApplyPartial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DebtStatusPartial, debt.Status)
}

func TestDebtFSM_SettleFromPending(t *testing.T) {
	debt := &models.DebtItem{Status: models.DebtStatusPending}
	dfsm := NewDebtFSM(debt)

	err := dfsm.Settle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DebtStatusPaid, debt.Status)
}

func TestDebtFSM_SettleFromPartial(t *testing.T) {
	debt := &models.DebtItem{Status: models.DebtStatusPartial}
	dfsm := NewDebtFSM(debt)

	err := dfsm.Settle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DebtStatusPaid, debt.Status)
}

func TestDebtFSM_PaidIsTerminal(t *testing.T) {
	debt := &models.DebtItem{Status: models.DebtStatusPaid}
	dfsm := NewDebtFSM(debt)

	assert.False(t, dfsm.Can("apply_partial"))
	assert.False(t, dfsm.Can("settle"))

	err := dfsm.ApplyPartial(context.Background())
	assert.Error(t, err)
	assert.Equal(t, models.DebtStatusPaid, debt.Status)
}

func TestDebtFSM_PartialCannotApplyPartialAgain(t *testing.T) {
	debt := &models.DebtItem{Status: models.DebtStatusPartial}
	dfsm := NewDebtFSM(debt)

	assert.False(t, dfsm.Can("apply_partial"))
	assert.True(t, dfsm.Can("settle"))
}
