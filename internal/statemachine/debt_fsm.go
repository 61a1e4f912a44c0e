package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/srodrigo23/backend-otb-control/internal/models"
)

// DebtFSM wraps a debt item with its state machine. Transitions only move
// forward: a debt that reached paid never returns to pending or partial.
type DebtFSM struct {
	debt *models.DebtItem
	fsm  *fsm.FSM
}

// NewDebtFSM creates a new debt state machine
func NewDebtFSM(debt *models.DebtItem) *DebtFSM {
	dfsm := &DebtFSM{
		debt: debt,
	}

	dfsm.fsm = fsm.NewFSM(
		debt.Status,
		fsm.Events{
			// pending → partial (some amount applied, balance remains)
			{Name: "apply_partial", Src: []string{models.DebtStatusPending}, Dst: models.DebtStatusPartial},

			// pending/partial → paid (balance cleared)
			{Name: "settle", Src: []string{models.DebtStatusPending, models.DebtStatusPartial}, Dst: models.DebtStatusPaid},
		},
		fsm.Callbacks{},
	)

	return dfsm
}

// ApplyPartial transitions the debt to partial state
func (d *DebtFSM) ApplyPartial(ctx context.Context) error {
	if err := d.fsm.Event(ctx, "apply_partial"); err != nil {
		return fmt.Errorf("la deuda no puede pasar a pago parcial desde el estado %s: %w", d.debt.Status, err)
	}

	d.debt.Status = d.fsm.Current()
	return nil
}

// Settle transitions the debt to paid state
func (d *DebtFSM) Settle(ctx context.Context) error {
	if err := d.fsm.Event(ctx, "settle"); err != nil {
		return fmt.Errorf("la deuda no puede marcarse como pagada desde el estado %s: %w", d.debt.Status, err)
	}

	d.debt.Status = d.fsm.Current()
	return nil
}

// Current returns the current state
func (d *DebtFSM) Current() string {
	return d.fsm.Current()
}

// Can checks if a transition is possible
func (d *DebtFSM) Can(event string) bool {
	return d.fsm.Can(event)
}
