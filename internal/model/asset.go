package model

// Asset describes one tracked instrument and the canonical label of every
// vocabulary field in its output table.
type Asset struct {
	Name   string
	Symbol string
	Labels [NumFields]string
}

// Label returns the canonical column name of f for this asset.
func (a Asset) Label(f Field) string { return a.Labels[f] }

// CloseLabel is the column joined on when merging assets.
func (a Asset) CloseLabel() string { return a.Labels[Close] }

// IBOV is the Ibovespa index as quoted by Yahoo Finance.
var IBOV = Asset{
	Name:   "ibovespa",
	Symbol: "^BVSP",
	Labels: [NumFields]string{
		Close:  "Fechamento_IBOV",
		High:   "Maximo_IBOV",
		Low:    "Minimo_IBOV",
		Open:   "Abertura_IBOV",
		Volume: "Volume_IBOV",
	},
}

// USDBRL is the dollar/real exchange rate.
var USDBRL = Asset{
	Name:   "cambio",
	Symbol: "USDBRL=X",
	Labels: [NumFields]string{
		Close:  "Fechamento_Cambio",
		High:   "Maximo_Cambio",
		Low:    "Minimo_Cambio",
		Open:   "Abertura_Cambio",
		Volume: "Volume_Cambio",
	},
}

// RatioColumn is the derived IBOV in dollars column of the merged table.
const RatioColumn = "IBOV_USD"
