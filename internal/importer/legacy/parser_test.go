package legacy

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel1743/claculadorafuxion-sub001/internal/ledger"
)

func TestParse_MovimientosSemicolon(t *testing.T) {
	input := strings.Join([]string{
		"Fecha;Tipo;Producto;Cajas;Sobres;Monto;Campaña;Notas;Origen;Cliente;Referidor;Prestatario;Valor regalo",
		"15/08/2026;Compra;Prunex 1;10;0;S/1.000,00;;;;;;;",
		"16/08/2026;Venta;Prunex 1;2;0;270,00;agosto;;Recurrente;María;;;",
		"17/08/2026;Publicidad;;0;0;50;agosto;anuncio IG;;;;;",
		"Total;;;;;1320",
	}, "\n")

	rows, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	purchase := rows[0]
	assert.Equal(t, ledger.KindPurchase, purchase.Kind)
	assert.Equal(t, "Prunex 1", purchase.ProductName)
	assert.Equal(t, 10, purchase.QuantityBoxes)
	assert.True(t, purchase.TotalAmount.Equal(decimal.RequireFromString("1000")),
		"amount %s", purchase.TotalAmount)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), purchase.Date)

	sale := rows[1]
	assert.Equal(t, ledger.KindSale, sale.Kind)
	assert.Equal(t, ledger.SaleOriginRecurring, sale.SaleOrigin)
	assert.Equal(t, "María", sale.CustomerRef)
	assert.Equal(t, "agosto", sale.CampaignTag)

	ad := rows[2]
	assert.Equal(t, ledger.KindAdvertising, ad.Kind)
	assert.Zero(t, ad.QuantityBoxes)
	assert.Equal(t, "anuncio IG", ad.Notes)
}

func TestParse_SimpleCommaSeparated(t *testing.T) {
	input := strings.Join([]string{
		"Fecha,Tipo,Producto,Cajas,Sobres,Monto",
		"2026-08-01,venta,Café Ganoderma,1,14,202.50",
		"2026-08-02,apertura de caja,Café Ganoderma,1,0,0",
	}, "\n")

	rows, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ledger.KindSale, rows[0].Kind)
	assert.Equal(t, "Café Ganoderma", rows[0].ProductName)
	assert.Equal(t, 1, rows[0].QuantityBoxes)
	assert.Equal(t, 14, rows[0].QuantitySachets)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("202.5")))

	assert.Equal(t, ledger.KindBoxOpening, rows[1].Kind)
}

func TestParse_LeadingJunkBeforeHeader(t *testing.T) {
	input := strings.Join([]string{
		"Exportado el 20/08/2026",
		"",
		"Fecha;Tipo;Producto;Cajas;Sobres;Monto",
		"18/08/2026;Consumo Personal;Prunex 1;0;2;0",
	}, "\n")

	rows, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ledger.KindPersonalConsumption, rows[0].Kind)
	assert.Equal(t, 2, rows[0].QuantitySachets)
}

func TestParse_UnknownKind(t *testing.T) {
	input := strings.Join([]string{
		"Fecha;Tipo;Producto;Cajas;Sobres;Monto",
		"18/08/2026;Donación;Prunex 1;1;0;0",
	}, "\n")

	_, err := New().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transaction type")
	assert.Contains(t, err.Error(), "row 2")
}

func TestParse_UnrecognizedLayout(t *testing.T) {
	input := "Date,Type,Amount\n2026-08-01,sale,100\n"

	_, err := New().Parse(strings.NewReader(input))
	assert.Error(t, err)
}

func TestParse_GiftValue(t *testing.T) {
	input := strings.Join([]string{
		"Fecha;Tipo;Producto;Cajas;Sobres;Monto;Campaña;Notas;Origen;Cliente;Referidor;Prestatario;Valor regalo",
		"15/08/2026;Compra;Prunex 1;5;0;0;;;;;;;675,00",
	}, "\n")

	rows, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NotNil(t, rows[0].GiftValue)
	assert.True(t, rows[0].GiftValue.Equal(decimal.RequireFromString("675")))
	assert.True(t, rows[0].TotalAmount.IsZero())
}

func TestParseKind_AccentVariants(t *testing.T) {
	tests := []struct {
		label string
		want  ledger.Kind
	}{
		{label: "Préstamo", want: ledger.KindLoan},
		{label: "prestamo", want: ledger.KindLoan},
		{label: "Pago de Préstamo", want: ledger.KindLoanRepayment},
		{label: "MUESTRA", want: ledger.KindMarketingSample},
		{label: "Apertura", want: ledger.KindBoxOpening},
	}

	for _, tt := range tests {
		got, ok := parseKind(tt.label)
		require.True(t, ok, "label %q", tt.label)
		assert.Equal(t, tt.want, got)
	}

	_, ok := parseKind("regalo")
	assert.False(t, ok)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "0"},
		{in: "100", want: "100"},
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "S/135,50", want: "135.5"},
		{in: "$ 99.90", want: "99.9"},
		{in: "0,50", want: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"parseAmount(%q) = %s, want %s", tt.in, got, tt.want)
		})
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"02/01/2026", "2/1/2026", "2026-01-02", "02-01-2026"} {
		got, ok := parseDate(s)
		require.True(t, ok, "layout %q", s)
		assert.Equal(t, 2026, got.Year())
	}

	_, ok := parseDate("Total")
	assert.False(t, ok)
}
