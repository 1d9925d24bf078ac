package legacy

// Profile describes the column layout of a legacy dashboard export. The old
// app grew several export variants over time; each gets a profile and the
// parser auto-detects which one it is looking at.
type Profile struct {
	Name string

	DateCol    string
	KindCol    string
	ProductCol string
	BoxesCol   string
	SachetsCol string
	AmountCol  string

	// Optional metadata columns; empty means the profile does not carry
	// that column.
	CampaignCol  string
	NotesCol     string
	OriginCol    string
	CustomerCol  string
	ReferrerCol  string
	BorrowerCol  string
	GiftValueCol string
}

// requiredCols returns the columns that must all be present for a profile
// to match.
func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.KindCol, p.ProductCol, p.BoxesCol, p.SachetsCol, p.AmountCol}
}

// profiles is the ordered list of known export layouts; more specific ones
// first so the full export never matches the reduced profile.
var profiles = []Profile{
	{
		Name:         "movimientos",
		DateCol:      "Fecha",
		KindCol:      "Tipo",
		ProductCol:   "Producto",
		BoxesCol:     "Cajas",
		SachetsCol:   "Sobres",
		AmountCol:    "Monto",
		CampaignCol:  "Campaña",
		NotesCol:     "Notas",
		OriginCol:    "Origen",
		CustomerCol:  "Cliente",
		ReferrerCol:  "Referidor",
		BorrowerCol:  "Prestatario",
		GiftValueCol: "Valor regalo",
	},
	{
		Name:       "simple",
		DateCol:    "Fecha",
		KindCol:    "Tipo",
		ProductCol: "Producto",
		BoxesCol:   "Cajas",
		SachetsCol: "Sobres",
		AmountCol:  "Monto",
	},
}
