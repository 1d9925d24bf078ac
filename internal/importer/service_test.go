package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/importer"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
	"github.com/daniel1743/claculadorafuxion-sub001/internal/product"
)

func TestImportBatch_Empty(t *testing.T) {
	svc := importer.NewService(nil, nil, nil)

	result, err := svc.ImportBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Applied)
}

func TestImportBatch_ConflictsAbortEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("270")

	ledgerRepo := ledger.NewMockRepository(ctrl)
	ledgerRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return([]*ledger.Transaction{{
			ID:            uuid.New(),
			ProductName:   "Prunex 1",
			Kind:          ledger.KindSale,
			QuantityBoxes: 2,
			TotalAmount:   amount,
			Date:          date,
		}}, nil)

	svc := importer.NewService(nil,
		ledger.NewService(ledgerRepo),
		product.NewService(product.NewMockRepository(ctrl)),
	)

	rows := []importer.Row{
		{ProductName: "Prunex 1", Kind: ledger.KindSale, QuantityBoxes: 2, TotalAmount: amount, Date: date},
		{ProductName: "Prunex 1", Kind: ledger.KindPurchase, QuantityBoxes: 5, TotalAmount: decimal.RequireFromString("500"), Date: date},
	}

	result, err := svc.ImportBatch(context.Background(), rows)
	require.NoError(t, err)

	// One duplicate blocks the whole batch; the clean row is reported back
	// but nothing is written.
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, ledger.KindSale, result.Conflicts[0].Incoming.Kind)
	assert.Empty(t, result.Applied)
	assert.Len(t, result.New, 1)
}

func TestImportBatch_AppliesInDateOrderAndCreatesProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := &product.Product{
		ID:            uuid.New(),
		Name:          "Prunex 1",
		SachetsPerBox: 28,
	}

	ledgerRepo := ledger.NewMockRepository(ctrl)
	ledgerRepo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

	var recorded []ledger.Kind

	ledgerRepo.EXPECT().Begin(gomock.Any()).
		DoAndReturn(func(context.Context) (ledger.Tx, error) {
			tx := ledger.NewMockTx(ctrl)
			tx.EXPECT().ProductForUpdate(gomock.Any(), p.ID).Return(p, nil)
			tx.EXPECT().SaveProduct(gomock.Any(), p).Return(nil)
			tx.EXPECT().AppendTransaction(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, entry *ledger.Transaction) error {
					recorded = append(recorded, entry.Kind)
					return nil
				})
			tx.EXPECT().Commit().Return(nil)
			tx.EXPECT().Rollback().Return(nil).AnyTimes()
			return tx, nil
		}).
		Times(2)

	productRepo := product.NewMockRepository(ctrl)
	gomock.InOrder(
		productRepo.EXPECT().GetProductByName(gomock.Any(), "Prunex 1").
			Return(nil, product.ErrNotFound),
		productRepo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, created *product.Product) error {
				created.ID = p.ID
				created.SachetsPerBox = p.SachetsPerBox
				return nil
			}),
		productRepo.EXPECT().GetProductByName(gomock.Any(), "Prunex 1").
			Return(p, nil),
	)

	svc := importer.NewService(nil,
		ledger.NewService(ledgerRepo),
		product.NewService(productRepo),
	)

	// Rows arrive out of order; the purchase must replay before the sale.
	rows := []importer.Row{
		{ProductName: "Prunex 1", Kind: ledger.KindSale, QuantityBoxes: 2, TotalAmount: decimal.RequireFromString("270"), Date: time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)},
		{ProductName: "Prunex 1", Kind: ledger.KindPurchase, QuantityBoxes: 10, TotalAmount: decimal.RequireFromString("1000"), Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}

	result, err := svc.ImportBatch(context.Background(), rows)
	require.NoError(t, err)

	assert.Empty(t, result.Conflicts)
	assert.Len(t, result.Applied, 2)
	assert.Equal(t, []string{"Prunex 1"}, result.CreatedProducts)
	assert.Equal(t, []ledger.Kind{ledger.KindPurchase, ledger.KindSale}, recorded)
}
