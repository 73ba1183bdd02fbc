package resolution

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/channel"
	"github.com/salesbridge/backend/internal/domain/mapping"
	"github.com/salesbridge/backend/internal/domain/shared"
)

func mustProduct(t *testing.T, sku, skuPrimario, name string, unitsPerDisplay int64, category string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, skuPrimario, name, unitsPerDisplay)
	require.NoError(t, err)
	p.Category = category
	p.Brand = "Bakery Co"
	p.PackageType = "display"
	return p
}

func mustLink(t *testing.T, skuMaster string, productID uuid.UUID, items int64) *catalog.MasterBoxLink {
	t.Helper()
	l, err := catalog.NewMasterBoxLink(skuMaster, productID, items)
	require.NoError(t, err)
	return l
}

func mustRule(t *testing.T, pattern string, target string, multiplier int64) *mapping.Rule {
	t.Helper()
	r, err := mapping.NewRule(pattern, mapping.PatternTypeExact, "", target, multiplier, 0)
	require.NoError(t, err)
	return r
}

func testLine(t *testing.T, rawIdentifier string, qty int64, subtotal string) *channel.OrderLine {
	t.Helper()
	sub, err := decimal.NewFromString(subtotal)
	require.NoError(t, err)
	line, err := channel.NewOrderLine(
		"ORD-1001", rawIdentifier, qty,
		decimal.Zero, sub,
		"mercadolibre", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		channel.OrderStatusDelivered, channel.AcceptanceStatusAccepted,
	)
	require.NoError(t, err)
	return line
}

func testSnapshot(t *testing.T) *ConfigSnapshot {
	t.Helper()

	single := mustProduct(t, "BAKC_U04010", "BAKC_U04010", "Classic Loaf Single", 1, "breads")
	display := mustProduct(t, "BAKC_U20010", "BAKC_U04010", "Classic Loaf Display x5", 5, "breads")
	grbe := mustProduct(t, "GRBE_U26010", "GRBE_U26010", "Grain Bites", 1, "snacks")
	grca := mustProduct(t, "GRCA_U26010", "GRCA_U26010", "Grain Crackers", 1, "snacks")

	links := []*catalog.MasterBoxLink{
		mustLink(t, "GRBE_C02010", grbe.ID, 20),
	}

	rules := []*mapping.Rule{
		mustRule(t, "PACKGRCA_U26010", "GRCA_U26010", 4),
	}

	return NewConfigSnapshot(
		[]*catalog.Product{single, display, grbe, grca},
		links,
		rules,
	)
}

func TestResolver_DirectMatch(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)
	batch := uuid.New()

	fact := resolver.Resolve(testLine(t, "BAKC_U04010", 100, "250.00"), batch)

	assert.Equal(t, MatchTypeDirect, fact.MatchType)
	assert.Equal(t, int64(100), fact.UnitsSold)
	assert.Equal(t, int64(1), fact.ConversionFactor)
	assert.Equal(t, "BAKC_U04010", fact.CatalogSKU)
	assert.Equal(t, batch, fact.BatchID)
}

func TestResolver_DirectMatchAppliesUnitsPerDisplay(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)

	fact := resolver.Resolve(testLine(t, "BAKC_U20010", 100, "1000.00"), uuid.New())

	assert.Equal(t, MatchTypeDirect, fact.MatchType)
	assert.Equal(t, int64(5), fact.ConversionFactor)
	assert.Equal(t, int64(500), fact.UnitsSold, "display products must multiply by units per display")
	assert.NotEqual(t, int64(100), fact.UnitsSold)
	assert.Equal(t, "BAKC_U04010", fact.SKUPrimario)
}

func TestResolver_MasterBoxMatch(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)

	fact := resolver.Resolve(testLine(t, "GRBE_C02010", 2, "80.00"), uuid.New())

	assert.Equal(t, MatchTypeMasterBox, fact.MatchType)
	assert.Equal(t, int64(20), fact.ConversionFactor)
	assert.Equal(t, int64(40), fact.UnitsSold)
	assert.Equal(t, "GRBE_U26010", fact.CatalogSKU)
	assert.Equal(t, "snacks", fact.Category, "category must come from the linked product")
}

func TestResolver_MappingRuleMatch(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)

	fact := resolver.Resolve(testLine(t, "PACKGRCA_U26010", 10, "320.00"), uuid.New())

	assert.Equal(t, MatchTypeMapping, fact.MatchType)
	assert.Equal(t, int64(4), fact.QuantityMultiplier)
	assert.Equal(t, int64(1), fact.ConversionFactor)
	assert.Equal(t, int64(40), fact.UnitsSold)
	assert.Equal(t, "GRCA_U26010", fact.CatalogSKU)
}

func TestResolver_MappingRuleToMasterBox(t *testing.T) {
	snapshot := func() *ConfigSnapshot {
		grbe := mustProduct(t, "GRBE_U26010", "GRBE_U26010", "Grain Bites", 1, "snacks")
		links := []*catalog.MasterBoxLink{mustLink(t, "GRBE_C02010", grbe.ID, 20)}
		rules := []*mapping.Rule{mustRule(t, "CHANNEL_BOX_CODE", "GRBE_C02010", 2)}
		return NewConfigSnapshot([]*catalog.Product{grbe}, links, rules)
	}()
	resolver := NewResolver(snapshot, nil)

	fact := resolver.Resolve(testLine(t, "CHANNEL_BOX_CODE", 3, "240.00"), uuid.New())

	assert.Equal(t, MatchTypeMappingMasterBox, fact.MatchType)
	assert.Equal(t, int64(20), fact.ConversionFactor)
	assert.Equal(t, int64(2), fact.QuantityMultiplier)
	assert.Equal(t, int64(120), fact.UnitsSold)
	assert.Equal(t, "GRBE_U26010", fact.CatalogSKU)
}

func TestResolver_Unmapped(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)

	sub := "77.50"
	fact := resolver.Resolve(testLine(t, "XYZ_UNKNOWN", 7, sub), uuid.New())

	assert.Equal(t, MatchTypeUnmapped, fact.MatchType)
	assert.Equal(t, int64(7), fact.UnitsSold)
	assert.Empty(t, fact.CatalogSKU)
	assert.True(t, fact.Revenue.Equal(decimal.RequireFromString(sub)), "revenue must be preserved on unmapped facts")
}

func TestResolver_NormalizesIdentifiers(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)

	fact := resolver.Resolve(testLine(t, "  bakc_u04010  ", 3, "7.50"), uuid.New())

	assert.Equal(t, MatchTypeDirect, fact.MatchType)
	assert.Equal(t, "BAKC_U04010", fact.CatalogSKU)
}

func TestResolver_DirectMatchWinsOverRule(t *testing.T) {
	single := mustProduct(t, "BAKC_U04010", "BAKC_U04010", "Classic Loaf Single", 1, "breads")
	other := mustProduct(t, "GRCA_U26010", "GRCA_U26010", "Grain Crackers", 1, "snacks")
	rules := []*mapping.Rule{mustRule(t, "BAKC_U04010", "GRCA_U26010", 10)}
	resolver := NewResolver(NewConfigSnapshot([]*catalog.Product{single, other}, nil, rules), nil)

	fact := resolver.Resolve(testLine(t, "BAKC_U04010", 1, "2.50"), uuid.New())

	assert.Equal(t, MatchTypeDirect, fact.MatchType)
	assert.Equal(t, "BAKC_U04010", fact.CatalogSKU)
}

func TestResolver_DanglingRuleTargetDegradesToUnmapped(t *testing.T) {
	rules := []*mapping.Rule{mustRule(t, "ORPHAN_CODE", "GONE_SKU", 2)}
	resolver := NewResolver(NewConfigSnapshot(nil, nil, rules), nil)

	fact := resolver.Resolve(testLine(t, "ORPHAN_CODE", 5, "10.00"), uuid.New())

	assert.Equal(t, MatchTypeUnmapped, fact.MatchType)
	assert.Equal(t, int64(5), fact.UnitsSold)
}

func TestResolver_DuplicateExactRulesSumMultipliers(t *testing.T) {
	grca := mustProduct(t, "GRCA_U26010", "GRCA_U26010", "Grain Crackers", 1, "snacks")
	grbe := mustProduct(t, "GRBE_U26010", "GRBE_U26010", "Grain Bites", 1, "snacks")

	first := mustRule(t, "LEGACY_DUP", "GRCA_U26010", 3)
	second := mustRule(t, "LEGACY_DUP", "GRBE_U26010", 2)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	resolver := NewResolver(NewConfigSnapshot([]*catalog.Product{grca, grbe}, nil, []*mapping.Rule{second, first}), nil)

	fact := resolver.Resolve(testLine(t, "LEGACY_DUP", 2, "20.00"), uuid.New())

	assert.Equal(t, "GRCA_U26010", fact.CatalogSKU, "earliest created rule supplies the target")
	assert.Equal(t, int64(5), fact.QuantityMultiplier)
	assert.Equal(t, int64(10), fact.UnitsSold)
}

func TestResolver_Deterministic(t *testing.T) {
	resolver := NewResolver(testSnapshot(t), nil)
	line := testLine(t, "PACKGRCA_U26010", 10, "320.00")
	batch := uuid.New()

	first := resolver.Resolve(line, batch)
	second := resolver.Resolve(line, batch)

	assert.Equal(t, first.MatchType, second.MatchType)
	assert.Equal(t, first.UnitsSold, second.UnitsSold)
	assert.Equal(t, first.CatalogSKU, second.CatalogSKU)
	assert.True(t, first.Revenue.Equal(second.Revenue))
}

func TestResolver_InactiveProductExcluded(t *testing.T) {
	p := mustProduct(t, "BAKC_U04010", "BAKC_U04010", "Classic Loaf Single", 1, "breads")
	p.Deactivate()
	resolver := NewResolver(NewConfigSnapshot([]*catalog.Product{p}, nil, nil), nil)

	fact := resolver.Resolve(testLine(t, "BAKC_U04010", 1, "2.50"), uuid.New())

	assert.Equal(t, MatchTypeUnmapped, fact.MatchType)
}

func TestResolver_ChannelScopedRule(t *testing.T) {
	grca := mustProduct(t, "GRCA_U26010", "GRCA_U26010", "Grain Crackers", 1, "snacks")
	scoped, err := mapping.NewRule("SCOPED_CODE", mapping.PatternTypeExact, "shopify", "GRCA_U26010", 1, 0)
	require.NoError(t, err)
	resolver := NewResolver(NewConfigSnapshot([]*catalog.Product{grca}, nil, []*mapping.Rule{scoped}), nil)

	mlFact := resolver.Resolve(testLine(t, "SCOPED_CODE", 4, "8.00"), uuid.New())
	assert.Equal(t, MatchTypeUnmapped, mlFact.MatchType, "rule scoped to another channel must not apply")
}

func storedRegexRule(pattern, target string) *mapping.Rule {
	// The shape rules have when loaded from storage: no compiled
	// pattern yet.
	return &mapping.Rule{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		SourcePattern:      pattern,
		PatternType:        mapping.PatternTypeRegex,
		TargetSKU:          target,
		QuantityMultiplier: 1,
		Status:             mapping.RuleStatusActive,
	}
}

func TestSnapshot_CompilesStoredRegexRules(t *testing.T) {
	grca := mustProduct(t, "GRCA_U26010", "GRCA_U26010", "Grain Crackers", 1, "snacks")
	snapshot := NewConfigSnapshot(
		[]*catalog.Product{grca},
		nil,
		[]*mapping.Rule{storedRegexRule(`^PACK\d+$`, "GRCA_U26010")},
	)
	require.Equal(t, 1, snapshot.RuleCount())
	assert.Zero(t, snapshot.InvalidRuleCount())

	resolver := NewResolver(snapshot, nil)
	batch := uuid.New()
	line := testLine(t, "PACK042", 3, "9.00")

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				fact := resolver.Resolve(line, batch)
				assert.Equal(t, MatchTypeMapping, fact.MatchType)
				assert.Equal(t, "GRCA_U26010", fact.CatalogSKU)
			}
		}()
	}
	wg.Wait()
}

func TestSnapshot_DropsUncompilableRegexRules(t *testing.T) {
	snapshot := NewConfigSnapshot(nil, nil, []*mapping.Rule{storedRegexRule("((", "GRCA_U26010")})

	assert.Zero(t, snapshot.RuleCount())
	assert.Equal(t, 1, snapshot.InvalidRuleCount())

	fact := NewResolver(snapshot, nil).Resolve(testLine(t, "ANYTHING", 1, "1.00"), uuid.New())
	assert.Equal(t, MatchTypeUnmapped, fact.MatchType)
}

func TestSnapshot_ExcludesInactiveLinks(t *testing.T) {
	grbe := mustProduct(t, "GRBE_U26010", "GRBE_U26010", "Grain Bites", 1, "snacks")
	link := mustLink(t, "GRBE_C02010", grbe.ID, 20)
	link.Deactivate()

	snapshot := NewConfigSnapshot([]*catalog.Product{grbe}, []*catalog.MasterBoxLink{link}, nil)
	assert.Zero(t, snapshot.MasterBoxCount())

	fact := NewResolver(snapshot, nil).Resolve(testLine(t, "GRBE_C02010", 2, "15.00"), uuid.New())
	assert.Equal(t, MatchTypeUnmapped, fact.MatchType)

	link.Activate()
	snapshot = NewConfigSnapshot([]*catalog.Product{grbe}, []*catalog.MasterBoxLink{link}, nil)
	fact = NewResolver(snapshot, nil).Resolve(testLine(t, "GRBE_C02010", 2, "15.00"), uuid.New())
	assert.Equal(t, MatchTypeMasterBox, fact.MatchType)
	assert.Equal(t, int64(40), fact.UnitsSold)
}
