package loan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
)

func active(boxes, sachets int) *loan.Loan {
	return &loan.Loan{
		Status:             loan.StatusActive,
		OutstandingBoxes:   boxes,
		OutstandingSachets: sachets,
	}
}

func TestSettle_OldestFirst(t *testing.T) {
	first := active(2, 0)
	second := active(3, 0)

	changed, err := loan.Settle([]*loan.Loan{first, second}, 4, 0)

	require.NoError(t, err)
	assert.Len(t, changed, 2)

	assert.Equal(t, loan.StatusSettled, first.Status)
	assert.Zero(t, first.OutstandingBoxes)

	assert.Equal(t, loan.StatusActive, second.Status)
	assert.Equal(t, 1, second.OutstandingBoxes)
}

func TestSettle_BoxesAndSachetsIndependent(t *testing.T) {
	first := active(1, 10)
	second := active(0, 5)

	changed, err := loan.Settle([]*loan.Loan{first, second}, 1, 12)

	require.NoError(t, err)
	assert.Len(t, changed, 2)

	assert.Equal(t, loan.StatusSettled, first.Status)
	assert.Zero(t, first.OutstandingSachets)

	assert.Equal(t, 3, second.OutstandingSachets)
	assert.Equal(t, loan.StatusActive, second.Status)
}

func TestSettle_ExactRepaymentSettlesAll(t *testing.T) {
	first := active(1, 0)
	second := active(2, 7)

	changed, err := loan.Settle([]*loan.Loan{first, second}, 3, 7)

	require.NoError(t, err)
	assert.Len(t, changed, 2)
	assert.Equal(t, loan.StatusSettled, first.Status)
	assert.Equal(t, loan.StatusSettled, second.Status)
}

func TestSettle_OverRepaymentLeavesLoansUntouched(t *testing.T) {
	first := active(1, 0)
	second := active(1, 3)

	_, err := loan.Settle([]*loan.Loan{first, second}, 3, 0)

	assert.ErrorIs(t, err, loan.ErrOverRepayment)
	assert.Equal(t, 1, first.OutstandingBoxes)
	assert.Equal(t, 1, second.OutstandingBoxes)
	assert.Equal(t, loan.StatusActive, first.Status)
}

func TestSettle_UntouchedRowsNotReturned(t *testing.T) {
	first := active(5, 0)
	second := active(1, 0)

	changed, err := loan.Settle([]*loan.Loan{first, second}, 2, 0)

	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Same(t, first, changed[0])
	assert.Equal(t, 3, first.OutstandingBoxes)
	assert.Equal(t, 1, second.OutstandingBoxes)
}
