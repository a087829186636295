package service

import (
	"fmt"

	"github.com/GTDGit/todopro_api/internal/pricing"
	"github.com/GTDGit/todopro_api/internal/utils"
)

// CatalogSnapshotter provides the catalog and admin fee for one calculation.
type CatalogSnapshotter interface {
	Snapshot() (*pricing.Catalog, float64)
}

// CalculateRequest is the body of both calculator endpoints.
type CalculateRequest struct {
	Days  pricing.Numeric     `json:"days"`
	Lines []pricing.LineInput `json:"lines"`
}

// CalculatorService runs the pricing policies against the current catalog.
type CalculatorService struct {
	catalog CatalogSnapshotter
}

func NewCalculatorService(catalog CatalogSnapshotter) *CalculatorService {
	return &CalculatorService{catalog: catalog}
}

func (r *CalculateRequest) validate() error {
	if len(r.Lines) > pricing.MaxLines {
		return fmt.Errorf("%w: at most %d product lines", utils.ErrTooManyLines, pricing.MaxLines)
	}
	return nil
}

// errOutOfRange is returned when quantities are so large that the totals
// overflow.
var errOutOfRange = fmt.Errorf("%w: quantities are too large to price", utils.ErrInvalidInput)

func (r *CalculateRequest) days() float64 {
	return clampZero(r.Days.Float())
}

// Flat prices the request with the flat unit-price policy.
func (s *CalculatorService) Flat(req *CalculateRequest) (*pricing.FlatResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	catalog, fee := s.catalog.Snapshot()
	res := pricing.CalculateFlat(pricing.FlatInput{
		Catalog:  catalog,
		AdminFee: fee,
		Days:     req.days(),
		Lines:    req.Lines,
	})
	if !res.Finite() {
		return nil, errOutOfRange
	}
	return &res, nil
}

// Prorated prices the request with the per-day prorated policy.
func (s *CalculatorService) Prorated(req *CalculateRequest) (*pricing.ProratedResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	catalog, fee := s.catalog.Snapshot()
	res := pricing.CalculateProrated(pricing.ProratedInput{
		Catalog:  catalog,
		AdminFee: fee,
		Days:     req.days(),
		Lines:    req.Lines,
	})
	if !res.Finite() {
		return nil, errOutOfRange
	}
	return &res, nil
}
