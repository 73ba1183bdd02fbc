package resolution

import (
	"sort"

	"github.com/salesbridge/backend/internal/domain/catalog"
	"github.com/salesbridge/backend/internal/domain/mapping"
)

// MasterBoxEntry pairs a master box link with the product it points at.
// Links whose product is missing or inactive are dropped when the
// snapshot is built.
type MasterBoxEntry struct {
	Link    *catalog.MasterBoxLink
	Product *catalog.Product
}

// ConfigSnapshot is an immutable view of the resolution configuration.
// It is built once per refresh run (or preview request) and shared
// across worker goroutines without locking.
type ConfigSnapshot struct {
	productsBySKU  map[string]*catalog.Product
	linksByMaster  map[string]*MasterBoxEntry
	rulesByCreated []*mapping.Rule
	invalidRules   int
}

// NewConfigSnapshot builds a snapshot from active products, master box
// links and mapping rules. Inactive products, links and rules are
// excluded; links pointing at excluded products are excluded with them.
func NewConfigSnapshot(products []*catalog.Product, links []*catalog.MasterBoxLink, rules []*mapping.Rule) *ConfigSnapshot {
	s := &ConfigSnapshot{
		productsBySKU: make(map[string]*catalog.Product, len(products)),
		linksByMaster: make(map[string]*MasterBoxEntry, len(links)),
	}

	byID := make(map[string]*catalog.Product, len(products))
	for _, p := range products {
		if p == nil || !p.IsActive() {
			continue
		}
		s.productsBySKU[catalog.NormalizeSKU(p.SKU)] = p
		byID[p.ID.String()] = p
	}

	for _, l := range links {
		if l == nil || !l.IsActive() {
			continue
		}
		p, ok := byID[l.ProductID.String()]
		if !ok {
			continue
		}
		s.linksByMaster[catalog.NormalizeSKU(l.SKUMaster)] = &MasterBoxEntry{Link: l, Product: p}
	}

	active := make([]*mapping.Rule, 0, len(rules))
	for _, r := range rules {
		if r == nil || !r.IsActive() {
			continue
		}
		// Regex rules from storage are compiled here, before the
		// snapshot is shared across workers.
		if err := r.EnsureCompiled(); err != nil {
			s.invalidRules++
			continue
		}
		active = append(active, r)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	s.rulesByCreated = active

	return s
}

// ProductBySKU looks up an active product by normalized SKU
func (s *ConfigSnapshot) ProductBySKU(normalized string) (*catalog.Product, bool) {
	p, ok := s.productsBySKU[normalized]
	return p, ok
}

// MasterBoxByCode looks up a master box entry by normalized master code
func (s *ConfigSnapshot) MasterBoxByCode(normalized string) (*MasterBoxEntry, bool) {
	e, ok := s.linksByMaster[normalized]
	return e, ok
}

// MatchingRules returns active rules covering the identifier for the
// given channel, in creation order.
func (s *ConfigSnapshot) MatchingRules(normalized, channelName string) []*mapping.Rule {
	var matched []*mapping.Rule
	for _, r := range s.rulesByCreated {
		if r.Matches(normalized, channelName) {
			matched = append(matched, r)
		}
	}
	return matched
}

// ProductCount returns the number of active products in the snapshot
func (s *ConfigSnapshot) ProductCount() int { return len(s.productsBySKU) }

// MasterBoxCount returns the number of usable master box links
func (s *ConfigSnapshot) MasterBoxCount() int { return len(s.linksByMaster) }

// RuleCount returns the number of active rules in the snapshot
func (s *ConfigSnapshot) RuleCount() int { return len(s.rulesByCreated) }

// InvalidRuleCount returns the number of active rules excluded because
// their pattern failed to compile
func (s *ConfigSnapshot) InvalidRuleCount() int { return s.invalidRules }
