package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/loan"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

func testProduct(boxes, sachets int, avgCost string) *product.Product {
	return &product.Product{
		ID:                  uuid.New(),
		Name:                "Prunex 1",
		StockBoxes:          boxes,
		StockSachets:        sachets,
		SachetsPerBox:       28,
		WeightedAverageCost: decimal.RequireFromString(avgCost),
		ListPrice:           decimal.RequireFromString("135"),
	}
}

func expectHappyTx(tx *ledger.MockTx, p *product.Product) {
	tx.EXPECT().ProductForUpdate(gomock.Any(), p.ID).Return(p, nil)
	tx.EXPECT().SaveProduct(gomock.Any(), p).Return(nil)
	tx.EXPECT().AppendTransaction(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil).AnyTimes()
}

func TestService_Record_Purchase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := testProduct(0, 0, "0")

	tx := ledger.NewMockTx(ctrl)
	expectHappyTx(tx, p)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	svc := ledger.NewService(repo)

	res, err := svc.Record(context.Background(), ledger.RecordParams{
		ProductID:     p.ID,
		Kind:          ledger.KindPurchase,
		QuantityBoxes: 10,
		TotalAmount:   decimal.RequireFromString("100000"),
	})

	require.NoError(t, err)
	assert.Equal(t, 10, res.Product.StockBoxes)
	assert.True(t, res.Product.WeightedAverageCost.Equal(decimal.RequireFromString("10000")))
	require.NotNil(t, res.Transaction.UnitCostAtEntry)
	assert.True(t, res.Transaction.UnitCostAtEntry.Equal(decimal.RequireFromString("10000")))
	assert.Nil(t, res.LoanCreated)
}

func TestService_Record_OversoldSaleCreatesLoan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := testProduct(3, 0, "90")

	tx := ledger.NewMockTx(ctrl)
	expectHappyTx(tx, p)
	tx.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	svc := ledger.NewService(repo)

	res, err := svc.Record(context.Background(), ledger.RecordParams{
		ProductID:     p.ID,
		Kind:          ledger.KindSale,
		QuantityBoxes: 5,
		TotalAmount:   decimal.RequireFromString("675"),
		CustomerRef:   "Maria",
	})

	require.NoError(t, err)

	// Full revenue is recognized; the 2 unserved boxes become a loan.
	assert.Zero(t, res.Product.StockBoxes)
	require.NotNil(t, res.LoanCreated)
	assert.Equal(t, 2, res.LoanCreated.OutstandingBoxes)
	assert.Equal(t, "Maria", res.LoanCreated.Borrower)
	assert.Equal(t, loan.OriginOversale, res.LoanCreated.Origin)

	// The cost basis snapshot is the average at sale time.
	require.NotNil(t, res.Transaction.UnitCostAtEntry)
	assert.True(t, res.Transaction.UnitCostAtEntry.Equal(decimal.RequireFromString("90")))
}

func TestService_Record_AnonymousOversaleBorrower(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := testProduct(0, 0, "90")

	tx := ledger.NewMockTx(ctrl)
	expectHappyTx(tx, p)
	tx.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *loan.Loan) error {
			assert.Equal(t, "generated by oversale", l.Borrower)
			return nil
		})

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	svc := ledger.NewService(repo)

	_, err := svc.Record(context.Background(), ledger.RecordParams{
		ProductID:     p.ID,
		Kind:          ledger.KindSale,
		QuantityBoxes: 1,
		TotalAmount:   decimal.RequireFromString("135"),
	})

	require.NoError(t, err)
}

func TestService_Record_Repayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := testProduct(0, 0, "90")

	older := &loan.Loan{ID: uuid.New(), ProductID: p.ID, Status: loan.StatusActive, OutstandingBoxes: 1}
	newer := &loan.Loan{ID: uuid.New(), ProductID: p.ID, Status: loan.StatusActive, OutstandingBoxes: 2}

	tx := ledger.NewMockTx(ctrl)
	expectHappyTx(tx, p)
	tx.EXPECT().OpenLoans(gomock.Any(), p.ID, "").Return([]*loan.Loan{older, newer}, nil)
	tx.EXPECT().UpdateLoan(gomock.Any(), older).Return(nil)
	tx.EXPECT().UpdateLoan(gomock.Any(), newer).Return(nil)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	svc := ledger.NewService(repo)

	res, err := svc.Record(context.Background(), ledger.RecordParams{
		ProductID:     p.ID,
		Kind:          ledger.KindLoanRepayment,
		QuantityBoxes: 2,
	})

	require.NoError(t, err)

	// Oldest loan settles first, the newer one is only reduced.
	assert.Equal(t, loan.StatusSettled, older.Status)
	assert.Zero(t, older.OutstandingBoxes)
	assert.Equal(t, loan.StatusActive, newer.Status)
	assert.Equal(t, 1, newer.OutstandingBoxes)

	// Returned goods are back in stock.
	assert.Equal(t, 2, res.Product.StockBoxes)
	assert.Len(t, res.SettledLoans, 2)
}

func TestService_Record_OverRepayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := testProduct(0, 0, "90")

	tx := ledger.NewMockTx(ctrl)
	tx.EXPECT().ProductForUpdate(gomock.Any(), p.ID).Return(p, nil)
	tx.EXPECT().OpenLoans(gomock.Any(), p.ID, "").
		Return([]*loan.Loan{{OutstandingBoxes: 1, Status: loan.StatusActive}}, nil)
	tx.EXPECT().Rollback().Return(nil)

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)

	svc := ledger.NewService(repo)

	_, err := svc.Record(context.Background(), ledger.RecordParams{
		ProductID:     p.ID,
		Kind:          ledger.KindLoanRepayment,
		QuantityBoxes: 3,
	})

	assert.ErrorIs(t, err, loan.ErrOverRepayment)
}

func TestService_Record_RetriesOnVersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p1 := testProduct(5, 0, "100")
	p2 := testProduct(5, 0, "100")
	p2.ID = p1.ID

	conflictTx := ledger.NewMockTx(ctrl)
	conflictTx.EXPECT().ProductForUpdate(gomock.Any(), p1.ID).Return(p1, nil)
	conflictTx.EXPECT().SaveProduct(gomock.Any(), p1).Return(ledger.ErrConcurrentModification)
	conflictTx.EXPECT().Rollback().Return(nil)

	okTx := ledger.NewMockTx(ctrl)
	expectHappyTx(okTx, p2)

	repo := ledger.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().Begin(gomock.Any()).Return(conflictTx, nil),
		repo.EXPECT().Begin(gomock.Any()).Return(okTx, nil),
	)

	svc := ledger.NewService(repo)

	res, err := svc.Record(context.Background(), ledger.RecordParams{
		ProductID:     p1.ID,
		Kind:          ledger.KindSale,
		QuantityBoxes: 1,
		TotalAmount:   decimal.RequireFromString("135"),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, res.Product.StockBoxes)
}

func TestService_Record_Validation(t *testing.T) {
	type testCase struct {
		name    string
		params  ledger.RecordParams
		wantErr error
	}

	tests := []testCase{
		{
			name: "NegativeBoxes",
			params: ledger.RecordParams{
				Kind:          ledger.KindPurchase,
				QuantityBoxes: -1,
			},
			wantErr: ledger.ErrInvalidQuantity,
		},
		{
			name: "NegativeAmount",
			params: ledger.RecordParams{
				Kind:          ledger.KindPurchase,
				QuantityBoxes: 1,
				TotalAmount:   decimal.RequireFromString("-5"),
			},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "AdvertisingWithQuantity",
			params: ledger.RecordParams{
				Kind:          ledger.KindAdvertising,
				QuantityBoxes: 1,
				TotalAmount:   decimal.RequireFromString("50"),
			},
			wantErr: ledger.ErrInvalidQuantity,
		},
		{
			name: "ZeroQuantitySale",
			params: ledger.RecordParams{
				Kind:        ledger.KindSale,
				TotalAmount: decimal.RequireFromString("10"),
			},
			wantErr: ledger.ErrInvalidQuantity,
		},
		{
			name: "BoxOpeningWithSachets",
			params: ledger.RecordParams{
				Kind:            ledger.KindBoxOpening,
				QuantityBoxes:   1,
				QuantitySachets: 3,
			},
			wantErr: ledger.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Validation fails before any repository call.
			svc := ledger.NewService(ledger.NewMockRepository(ctrl))

			_, err := svc.Record(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_AmendAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	newAmount := decimal.RequireFromString("420")

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), id).
		Return(&ledger.Transaction{ID: id, Kind: ledger.KindAdvertising, TotalAmount: decimal.RequireFromString("400")}, nil)
	repo.EXPECT().UpdateAmount(gomock.Any(), id, newAmount).Return(nil)

	svc := ledger.NewService(repo)

	got, err := svc.AmendAmount(context.Background(), id, newAmount)

	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(newAmount))
}

func TestService_AmendAmount_OnlyAdvertising(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), id).
		Return(&ledger.Transaction{ID: id, Kind: ledger.KindSale}, nil)

	svc := ledger.NewService(repo)

	_, err := svc.AmendAmount(context.Background(), id, decimal.RequireFromString("10"))
	assert.ErrorIs(t, err, ledger.ErrNotAmendable)
}
