package models

// SKU is one in-app purchase product with its USD base price.
// Loaded once per run from the configured catalog.
type SKU struct {
	AppleSKU  string `yaml:"apple_sku" json:"apple_sku"`
	GoogleSKU string `yaml:"google_sku" json:"google_sku"`
	USDCost   string `yaml:"usd_cost" json:"usd_cost"` // decimal string, e.g. "4.99"
}

// RateSnapshot is a date-stamped USD-base exchange rate table.
// Immutable for the duration of a run. USD always maps to 1.0.
type RateSnapshot struct {
	Date  string             `json:"date"` // ISO-8601 date from the provider
	Rates map[string]float64 `json:"rates"`
}

// PairKey identifies one (country, SKU) pricing decision.
type PairKey struct {
	Country  string
	AppleSKU string
}

// PreviousPrices maps (country, sku) to the last published visible price.
type PreviousPrices map[PairKey]float64

// PriceRecord is the output of the conversion pipeline for one SKU in one
// country. One row per (country, apple_sku) in the price matrix.
type PriceRecord struct {
	Country         string  `json:"country"`
	CountryName     string  `json:"country_name"`
	Currency        string  `json:"currency"`
	AppleSKU        string  `json:"apple_sku"`
	GoogleSKU       string  `json:"google_sku"`
	USDTier         float64 `json:"usd_tier"`
	RawLocalPrice   float64 `json:"raw_local_price"`
	VisiblePrice    float64 `json:"visible_price"`
	UserPays        float64 `json:"user_pays"`
	RemittancePrice float64 `json:"remittance_price"`
	VATRate         float64 `json:"vat_rate"` // percent, e.g. 19.0
	VATAmount       float64 `json:"vat_amount"`
	GrossUSD        float64 `json:"gross_usd"`
	FeeUSD          float64 `json:"fee_usd"`
	NetUSD          float64 `json:"net_usd"`
	NetVsReference  string  `json:"net_vs_reference"` // signed percent, e.g. "-0.5%"
	WasUpdated      bool    `json:"was_updated"`
	UpdateReason    string  `json:"update_reason"`
}

// Key returns the pair key this record is stored under.
func (r *PriceRecord) Key() PairKey {
	return PairKey{Country: r.Country, AppleSKU: r.AppleSKU}
}

// Skip describes a (country, sku) pair that was dropped from a run, and why.
// A skip is not a run failure; the batch continues without the pair.
type Skip struct {
	Country  string `json:"country"`
	AppleSKU string `json:"apple_sku"`
	Stage    string `json:"stage"` // "parse", "convert", "tax", "fee"
	Message  string `json:"message"`
}

// RunResult is the full outcome of one conversion run.
type RunResult struct {
	Records  []PriceRecord `json:"records"`
	Skipped  []Skip        `json:"skipped"`
	Adopted  int           `json:"adopted"`
	Held     int           `json:"held"`
	RateDate string        `json:"rate_date"`
}

// PriceUpdate is the event published for every adopted price change.
type PriceUpdate struct {
	Country      string  `json:"country"`
	Currency     string  `json:"currency"`
	AppleSKU     string  `json:"apple_sku"`
	GoogleSKU    string  `json:"google_sku"`
	VisiblePrice float64 `json:"visible_price"`
	UserPays     float64 `json:"user_pays"`
	Reason       string  `json:"reason"`
	RateDate     string  `json:"rate_date"`
}
