package game

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// EventSpec is one entry in the static random-event table. MinTier is a
// floor: a company qualifies when its tier is at or above it.
type EventSpec struct {
	Category    EventCategory `yaml:"category"`
	Description string        `yaml:"description"`
	Multiplier  float64       `yaml:"multiplier"`
	MinTier     string        `yaml:"min_tier"`

	minTier Tier
}

func (e EventSpec) Eligible(t Tier) bool {
	return t.AtLeast(e.minTier)
}

// StockSpec is one configured market symbol: starting price plus the
// symmetric per-tick volatility bound.
type StockSpec struct {
	Symbol       string  `yaml:"symbol"`
	Name         string  `yaml:"name"`
	InitialPrice int64   `yaml:"initial_price"`
	Volatility   float64 `yaml:"volatility"`
}

type Catalog struct {
	Events []EventSpec `yaml:"events"`
	Stocks []StockSpec `yaml:"stocks"`
}

// LoadCatalog reads the embedded catalog, or the YAML file at path when
// one is configured.
func LoadCatalog(path string) (*Catalog, error) {
	raw := defaultCatalogYAML
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		raw = data
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	neutral := 0
	for i := range c.Events {
		e := &c.Events[i]
		switch e.Category {
		case EventPositive, EventNegative, EventNeutral:
		default:
			return fmt.Errorf("event %d: unknown category %q", i, e.Category)
		}
		t, err := ParseTier(e.MinTier)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		e.minTier = t
		if e.Category == EventNeutral {
			if e.Multiplier != 0 {
				return fmt.Errorf("event %d: neutral events must carry multiplier 0", i)
			}
			neutral++
		}
	}
	if neutral == 0 {
		return fmt.Errorf("catalog has no neutral events; the fallback pool would be empty")
	}
	for i, s := range c.Stocks {
		if s.Symbol == "" || s.InitialPrice < MinStockPrice {
			return fmt.Errorf("stock %d: symbol and initial_price >= %d required", i, MinStockPrice)
		}
		if s.Volatility <= 0 || s.Volatility >= 1 {
			return fmt.Errorf("stock %q: volatility must be in (0, 1)", s.Symbol)
		}
	}
	return nil
}

// Pool returns the events of one category a company of the given tier
// qualifies for. The neutral pool ignores the tier filter.
func (c *Catalog) Pool(category EventCategory, tier Tier) []EventSpec {
	var out []EventSpec
	for _, e := range c.Events {
		if e.Category != category {
			continue
		}
		if category != EventNeutral && !e.Eligible(tier) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SelectEvent applies the category thresholds to draw and picks uniformly
// from the resulting pool. draw below 0.15 lands neutral, below 0.575
// positive, otherwise negative; an empty tier-filtered pool falls back to
// the neutral table.
func (c *Catalog) SelectEvent(tier Tier, draw float64, pick func(n int) int) EventSpec {
	var category EventCategory
	switch {
	case draw < 0.15:
		category = EventNeutral
	case draw < 0.575:
		category = EventPositive
	default:
		category = EventNegative
	}
	pool := c.Pool(category, tier)
	if len(pool) == 0 {
		pool = c.Pool(EventNeutral, tier)
	}
	return pool[pick(len(pool))]
}

func (c *Catalog) Stock(symbol string) (StockSpec, bool) {
	for _, s := range c.Stocks {
		if s.Symbol == symbol {
			return s, true
		}
	}
	return StockSpec{}, false
}
