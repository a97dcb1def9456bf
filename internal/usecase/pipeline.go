package usecase

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/Dotan-Peleh/currency-convertor/internal/countries"
	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	drepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/fees"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/fx"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/stability"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/tax"
	"github.com/Dotan-Peleh/currency-convertor/internal/pricing/tiers"
	applogger "github.com/Dotan-Peleh/currency-convertor/pkg/logger"
)

// progressEvery controls how often the pipeline logs batch progress.
const progressEvery = 100

// Pipeline converts every SKU for every storefront country in one pass.
// Each pair is a pure function of (SKU, currency, rate snapshot, previous
// price), so pairs run on parallel workers with no shared mutable state.
type Pipeline struct {
	resolver *tiers.Resolver
	taxes    *tax.Table
	gate     *stability.Gate
	feeCfg   fees.Config
	excluded map[string]struct{}
	workers  int
	metrics  drepo.Metrics
	logger   *applogger.Logger
}

// NewPipeline assembles the conversion pipeline.
func NewPipeline(
	resolver *tiers.Resolver,
	taxes *tax.Table,
	gate *stability.Gate,
	feeCfg fees.Config,
	excluded []string,
	workers int,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *Pipeline {
	ex := make(map[string]struct{}, len(excluded))
	for _, c := range excluded {
		ex[c] = struct{}{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		resolver: resolver,
		taxes:    taxes,
		gate:     gate,
		feeCfg:   feeCfg,
		excluded: ex,
		workers:  workers,
		metrics:  metrics,
		logger:   logger,
	}
}

type pair struct {
	sku      models.SKU
	country  string
	currency string
}

type pairResult struct {
	record models.PriceRecord
	skip   *models.Skip
}

// Run evaluates the full SKU x country product against one rate snapshot
// and one previous-price snapshot. A failing pair is skipped with a reason;
// it never aborts the batch. Zero pairs is a valid zero-count result.
func (p *Pipeline) Run(
	ctx context.Context,
	skus []models.SKU,
	countryCurrency map[string]string,
	snap models.RateSnapshot,
	prev models.PreviousPrices,
) *models.RunResult {
	conv := fx.NewConverter(snap, p.logger)

	var pairs []pair
	for _, sku := range skus {
		for country, currency := range countryCurrency {
			if _, skip := p.excluded[country]; skip {
				continue
			}
			pairs = append(pairs, pair{sku: sku, country: country, currency: currency})
		}
	}

	result := &models.RunResult{RateDate: snap.Date}
	if len(pairs) == 0 {
		p.logger.Warn("no SKU/country pairs to process")
		return result
	}

	jobs := make(chan pair)
	out := make(chan pairResult, len(pairs))
	var processed int64

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pr := range jobs {
				out <- p.convertPair(pr, conv, prev)
				if n := atomic.AddInt64(&processed, 1); n%progressEvery == 0 {
					p.logger.Info("pipeline progress",
						applogger.Int64("processed", n),
						applogger.Int("total", len(pairs)))
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, pr := range pairs {
			select {
			case jobs <- pr:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(out)

	for r := range out {
		if r.skip != nil {
			result.Skipped = append(result.Skipped, *r.skip)
			p.metrics.RecordPair("skipped")
			p.logger.Warn("pair skipped",
				applogger.String("country", r.skip.Country),
				applogger.String("sku", r.skip.AppleSKU),
				applogger.String("stage", r.skip.Stage),
				applogger.String("reason", r.skip.Message))
			continue
		}
		result.Records = append(result.Records, r.record)
		if r.record.WasUpdated {
			result.Adopted++
			p.metrics.RecordPair("converted")
		} else {
			result.Held++
			p.metrics.RecordPair("held")
		}
	}

	// Deterministic output order regardless of worker scheduling.
	sort.Slice(result.Records, func(i, j int) bool {
		a, b := result.Records[i], result.Records[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.AppleSKU < b.AppleSKU
	})
	sort.Slice(result.Skipped, func(i, j int) bool {
		a, b := result.Skipped[i], result.Skipped[j]
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.AppleSKU < b.AppleSKU
	})

	p.logger.Info("pipeline completed",
		applogger.Int("records", len(result.Records)),
		applogger.Int("adopted", result.Adopted),
		applogger.Int("held", result.Held),
		applogger.Int("skipped", len(result.Skipped)))
	return result
}

// convertPair runs the full per-pair computation: conversion, tier snap,
// tax, fees, and the stability decision.
func (p *Pipeline) convertPair(pr pair, conv *fx.Converter, prev models.PreviousPrices) pairResult {
	skip := func(stage string, err error) pairResult {
		return pairResult{skip: &models.Skip{
			Country:  pr.country,
			AppleSKU: pr.sku.AppleSKU,
			Stage:    stage,
			Message:  err.Error(),
		}}
	}

	usdCost, err := decimal.NewFromString(pr.sku.USDCost)
	if err != nil {
		return skip("parse", fmt.Errorf("usd cost %q: %w", pr.sku.USDCost, err))
	}
	usd, _ := usdCost.Float64()
	if usd <= 0 {
		return skip("parse", fmt.Errorf("usd cost %q is not positive", pr.sku.USDCost))
	}

	raw := conv.ToLocal(usd, pr.currency)
	visible, err := p.resolver.Resolve(raw, pr.currency)
	if err != nil {
		return skip("convert", err)
	}

	ct := p.taxes.Lookup(pr.country)
	assessment := tax.Assess(visible, ct)
	breakdown := fees.Compute(visible, assessment.NetBeforeFees, pr.currency, conv, p.feeCfg)

	rec := models.PriceRecord{
		Country:         pr.country,
		CountryName:     countries.Name(pr.country),
		Currency:        pr.currency,
		AppleSKU:        pr.sku.AppleSKU,
		GoogleSKU:       pr.sku.GoogleSKU,
		USDTier:         usd,
		RawLocalPrice:   round(raw, 4),
		VisiblePrice:    visible,
		UserPays:        round(assessment.UserPays, 2),
		RemittancePrice: round(assessment.RemittancePrice, 2),
		VATRate:         round(ct.Rate*100, 1),
		VATAmount:       round(assessment.VATAmount, 2),
		GrossUSD:        round(breakdown.GrossUSD, 2),
		FeeUSD:          round(breakdown.FeeUSD, 2),
		NetUSD:          round(breakdown.NetUSD, 2),
		NetVsReference:  breakdown.NetVsReference,
	}

	prevPrice, hasPrev := prev[rec.Key()]
	decision := p.gate.Evaluate(rec.VisiblePrice, prevPrice, hasPrev)
	rec.WasUpdated = decision.Adopt
	rec.UpdateReason = decision.Reason
	if !decision.Adopt {
		// Held: only the published visible price rolls back to the previous
		// value. Tax, fee, and net figures keep reflecting the fresh
		// computation; consumers detect the mismatch via WasUpdated.
		rec.VisiblePrice = prevPrice
	}
	return pairResult{record: rec}
}

// round rounds a money figure for the persisted record.
func round(v float64, places int32) float64 {
	out, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return out
}
