package resolution

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/shared"
)

// Resolver turns raw order lines into sales facts against a fixed
// configuration snapshot. An unresolvable identifier produces an
// unmapped fact, never an error: resolution is total over its input.
//
// The match chain is evaluated in order until the first hit:
// direct product, master box, mapping rule. A matched rule's target is
// itself resolved against products first, then master boxes.
type Resolver struct {
	snapshot *ConfigSnapshot
	logger   *zap.Logger
}

// NewResolver creates a resolver over the given snapshot
func NewResolver(snapshot *ConfigSnapshot, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{snapshot: snapshot, logger: logger}
}

// Resolve computes the sales fact for one order line within the given
// refresh batch.
func (r *Resolver) Resolve(line *channel.OrderLine, batchID uuid.UUID) *SalesFact {
	normalized := catalog.NormalizeSKU(line.RawIdentifier)

	if product, ok := r.snapshot.ProductBySKU(normalized); ok {
		return r.buildFact(line, batchID, product, MatchTypeDirect, product.UnitsPerDisplay, 1)
	}

	if entry, ok := r.snapshot.MasterBoxByCode(normalized); ok {
		return r.buildFact(line, batchID, entry.Product, MatchTypeMasterBox, entry.Link.ItemsPerMasterBox, 1)
	}

	if rules := r.snapshot.MatchingRules(normalized, line.Channel); len(rules) > 0 {
		return r.resolveViaRule(line, batchID, normalized, rules)
	}

	return r.unmappedFact(line, batchID)
}

// resolveViaRule applies the earliest-created matching rule. Duplicate
// active exact rules for the same pattern and filter are rejected at
// the write boundary; if legacy rows still contain them, the first rule
// keeps the target and the multipliers are summed, with a warning.
func (r *Resolver) resolveViaRule(line *channel.OrderLine, batchID uuid.UUID, normalized string, rules []*mapping.Rule) *SalesFact {
	selected := rules[0]
	multiplier := selected.QuantityMultiplier

	if selected.PatternType == mapping.PatternTypeExact {
		for _, dup := range rules[1:] {
			if dup.PatternType == mapping.PatternTypeExact &&
				dup.SourcePattern == selected.SourcePattern &&
				dup.SourceFilter == selected.SourceFilter {
				multiplier += dup.QuantityMultiplier
				r.logger.Warn("duplicate exact mapping rules matched one identifier, summing multipliers",
					zap.String("raw_identifier", line.RawIdentifier),
					zap.String("pattern", selected.SourcePattern),
					zap.String("kept_target", selected.TargetSKU),
					zap.String("ignored_target", dup.TargetSKU))
			}
		}
	}

	target := catalog.NormalizeSKU(selected.TargetSKU)

	if product, ok := r.snapshot.ProductBySKU(target); ok {
		return r.buildFact(line, batchID, product, MatchTypeMapping, product.UnitsPerDisplay, multiplier)
	}

	if entry, ok := r.snapshot.MasterBoxByCode(target); ok {
		return r.buildFact(line, batchID, entry.Product, MatchTypeMappingMasterBox, entry.Link.ItemsPerMasterBox, multiplier)
	}

	r.logger.Warn("mapping rule target no longer resolves, degrading to unmapped",
		zap.String("raw_identifier", line.RawIdentifier),
		zap.String("target_sku", selected.TargetSKU))
	return r.unmappedFact(line, batchID)
}

func (r *Resolver) buildFact(line *channel.OrderLine, batchID uuid.UUID, product *catalog.Product, matchType MatchType, conversionFactor, multiplier int64) *SalesFact {
	if conversionFactor <= 0 {
		conversionFactor = 1
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	return &SalesFact{
		BaseEntity:         shared.NewBaseEntity(),
		LineID:             line.ID,
		BatchID:            batchID,
		RawIdentifier:      line.RawIdentifier,
		CatalogSKU:         product.SKU,
		SKUPrimario:        product.SKUPrimario,
		ProductName:        product.Name,
		Category:           product.Category,
		Brand:              product.Brand,
		PackageType:        product.PackageType,
		MatchType:          matchType,
		Quantity:           line.Quantity,
		QuantityMultiplier: multiplier,
		ConversionFactor:   conversionFactor,
		UnitsSold:          line.Quantity * multiplier * conversionFactor,
		Revenue:            line.Subtotal,
		Channel:            line.Channel,
		OrderDate:          line.OrderDate,
	}
}

func (r *Resolver) unmappedFact(line *channel.OrderLine, batchID uuid.UUID) *SalesFact {
	return &SalesFact{
		BaseEntity:         shared.NewBaseEntity(),
		LineID:             line.ID,
		BatchID:            batchID,
		RawIdentifier:      line.RawIdentifier,
		MatchType:          MatchTypeUnmapped,
		Quantity:           line.Quantity,
		QuantityMultiplier: 1,
		ConversionFactor:   1,
		UnitsSold:          line.Quantity,
		Revenue:            line.Subtotal,
		Channel:            line.Channel,
		OrderDate:          line.OrderDate,
	}
}
