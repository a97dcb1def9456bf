package repository

import (
	"context"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	drepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
)

// ConfigSKUSource serves the SKU catalog straight from configuration.
type ConfigSKUSource struct {
	skus []models.SKU
}

// NewConfigSKUSource creates a SKU source over a configured catalog.
func NewConfigSKUSource(skus []models.SKU) drepo.SKUSource {
	return &ConfigSKUSource{skus: skus}
}

// LoadSKUs returns a copy of the catalog so a run cannot mutate it.
func (s *ConfigSKUSource) LoadSKUs(ctx context.Context) ([]models.SKU, error) {
	out := make([]models.SKU, len(s.skus))
	copy(out, s.skus)
	return out, nil
}
