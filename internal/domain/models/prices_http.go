package models

// PricesRequest filters the price matrix query.
type PricesRequest struct {
	Country string `query:"country" validate:"omitempty,len=2"`
	SKU     string `query:"sku" validate:"omitempty,min=1"`
	Limit   int    `query:"limit" default:"500" validate:"gte=1,lte=5000"`
}

// RefreshResponse summarizes a conversion run triggered over HTTP.
type RefreshResponse struct {
	Count    int    `json:"count"`
	Adopted  int    `json:"adopted"`
	Held     int    `json:"held"`
	Skipped  int    `json:"skipped"`
	RateDate string `json:"rate_date"`
}
