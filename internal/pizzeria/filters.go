package pizzeria

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// filterEngine accumulates AND-combined clauses over the catalog.
// It keeps no pizza state: apply always reads the current catalog.
type filterEngine struct {
	kind        *models.PizzaType
	ingredients map[string]struct{}
	maxPrice    *decimal.Decimal
}

func newFilterEngine() *filterEngine {
	return &filterEngine{ingredients: make(map[string]struct{})}
}

func (f *filterEngine) reset() {
	f.kind = nil
	f.ingredients = make(map[string]struct{})
	f.maxPrice = nil
}

func (f *filterEngine) matches(p *Pizzeria, pz *pizza) bool {
	if f.kind != nil && pz.kind != *f.kind {
		return false
	}
	for name := range f.ingredients {
		if _, ok := pz.ingredients[name]; !ok {
			return false
		}
	}
	if f.maxPrice != nil && p.salePrice(pz).GreaterThan(*f.maxPrice) {
		return false
	}
	return true
}

func (f *filterEngine) set() models.FilterSet {
	out := models.FilterSet{}
	if f.kind != nil {
		kind := *f.kind
		out.Type = &kind
	}
	for name := range f.ingredients {
		out.Ingredients = append(out.Ingredients, name)
	}
	sort.Strings(out.Ingredients)
	if f.maxPrice != nil {
		price := *f.maxPrice
		out.MaxPrice = &price
	}
	return out
}

// SetTypeFilter restricts the session's query to one pizza type.
// An empty type clears the clause.
func (p *Pizzeria) SetTypeFilter(sessionID string, kind models.PizzaType) error {
	if kind != "" && !kind.Valid() {
		return errors.Wrapf(ErrInvalidArgument, "unknown pizza type %q", kind)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sess, _, err := p.requireSession(sessionID)
	if err != nil {
		return err
	}
	if kind == "" {
		sess.filters.kind = nil
		return nil
	}
	sess.filters.kind = &kind
	return nil
}

// SetIngredientFilter requires pizzas to carry every named ingredient.
// Names accumulate across calls; unknown names are ignored.
func (p *Pizzeria) SetIngredientFilter(sessionID string, names ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, _, err := p.requireSession(sessionID)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, known := p.ingredients[name]; known {
			sess.filters.ingredients[name] = struct{}{}
		}
	}
	return nil
}

// SetMaxPriceFilter caps the sale price of matching pizzas.
// Non-positive prices leave the clause unchanged.
func (p *Pizzeria) SetMaxPriceFilter(sessionID string, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, _, err := p.requireSession(sessionID)
	if err != nil {
		return err
	}
	if price.IsPositive() {
		sess.filters.maxPrice = &price
	}
	return nil
}

// Filters returns the session's current clauses
func (p *Pizzeria) Filters(sessionID string) (models.FilterSet, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sess, _, err := p.requireSession(sessionID)
	if err != nil {
		return models.FilterSet{}, err
	}
	return sess.filters.set(), nil
}

// ApplyFilters returns the catalog pizzas matching every clause set on the session
func (p *Pizzeria) ApplyFilters(sessionID string) ([]models.Pizza, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sess, _, err := p.requireSession(sessionID)
	if err != nil {
		return nil, err
	}
	return p.snapshotPizzas(func(pz *pizza) bool { return sess.filters.matches(p, pz) }), nil
}

// ClearFilters drops every clause on the session
func (p *Pizzeria) ClearFilters(sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, _, err := p.requireSession(sessionID)
	if err != nil {
		return err
	}
	sess.filters.reset()
	return nil
}
