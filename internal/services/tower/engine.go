// Package tower implements attachment arithmetic, position classification,
// and display naming for insurance tower structures.
package tower

import (
	"github.com/cmai/strata/internal/common"
	"github.com/cmai/strata/internal/interfaces"
	"github.com/cmai/strata/internal/models"
)

// Service derives everything the rest of the system needs from a tower: per
// layer attachment points, primary/excess classification, and option names.
// All derivation is pure; the service carries only the carrier marker and a
// logger.
type Service struct {
	logger *common.Logger
	marker string
}

var _ interfaces.TowerService = (*Service)(nil)

// NewService creates a tower service for the given carrier marker. An empty
// marker falls back to models.DefaultOursMarker.
func NewService(logger *common.Logger, marker string) *Service {
	if marker == "" {
		marker = models.DefaultOursMarker
	}
	return &Service{
		logger: logger,
		marker: marker,
	}
}

// CalculateAttachment computes the attachment point of the layer at
// targetIndex: the cumulative limit of everything beneath it, with each
// quota-share band counted once at its shared total rather than stacked per
// participant. Contiguous layers with the same quota-share value attach at
// the same point.
//
// The ground layer always attaches at zero. Invalid input (nil layers,
// targetIndex out of range) also yields zero rather than an error; callers
// treat this as a total function.
func (s *Service) CalculateAttachment(layers models.Tower, targetIndex int) float64 {
	if len(layers) == 0 || targetIndex <= 0 || targetIndex >= len(layers) {
		return 0
	}

	// Layers in the same quota-share band as the target all attach where the
	// band starts, so walk back to the band's first member.
	start := targetIndex
	if qs := layers[targetIndex].QuotaShare; qs > 0 {
		for start > 0 && layers[start-1].QuotaShare == qs {
			start--
		}
	}

	var sum float64
	for i := 0; i < start; {
		if qs := layers[i].QuotaShare; qs > 0 {
			sum += qs
			j := i
			for j < start && layers[j].QuotaShare == qs {
				j++
			}
			i = j
			continue
		}
		sum += layers[i].Limit
		i++
	}
	return sum
}

// RecalculateAttachments returns a copy of the tower with every layer's
// Attachment field refreshed. The input is not mutated. Call after any edit
// that can change ordering, limits, or quota-share grouping, before
// persisting.
func (s *Service) RecalculateAttachments(layers models.Tower) models.Tower {
	if layers == nil {
		return nil
	}
	out := layers.Clone()
	for i := range out {
		out[i].Attachment = s.CalculateAttachment(layers, i)
	}
	return out
}

// StructurePosition classifies an option as primary or excess from its tower:
// excess when our layer's computed attachment is strictly positive, primary
// otherwise. When no layer is ours, or the tower is empty, the stored
// position flag decides, defaulting to primary.
func (s *Service) StructurePosition(option *models.QuoteOption) models.Position {
	if option == nil {
		return models.PositionPrimary
	}

	idx := option.Tower.OursIndex(s.marker)
	if idx < 0 {
		if models.ValidPositions[option.Position] {
			return option.Position
		}
		return models.PositionPrimary
	}

	if s.CalculateAttachment(option.Tower, idx) > 0 {
		return models.PositionExcess
	}
	return models.PositionPrimary
}
