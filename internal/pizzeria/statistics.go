package pizzeria

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// Statistics are read-only and, apart from BenefitPerPizza and BenefitOfOrder,
// only count PROCESSED orders.

// BenefitPerPizza maps every catalog pizza to its sale price minus its minimum price, floored at zero
func (p *Pizzeria) BenefitPerPizza() map[string]decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]decimal.Decimal, len(p.pizzas))
	for name, pz := range p.pizzas {
		out[name] = p.benefit(pz)
	}
	return out
}

func (p *Pizzeria) orderBenefit(o *order) decimal.Decimal {
	total := decimal.Zero
	for _, name := range o.pizzas {
		if pz, ok := p.pizzas[name]; ok {
			total = total.Add(p.benefit(pz))
		}
	}
	return total
}

// BenefitOfOrder sums the per-pizza benefit over an order's pizzas
func (p *Pizzeria) BenefitOfOrder(orderID string) (decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	o, ok := p.orders[orderID]
	if !ok {
		return decimal.Zero, errors.Wrapf(ErrOrder, "order %q is unknown", orderID)
	}
	return p.orderBenefit(o), nil
}

// TotalBenefit sums the benefit of every PROCESSED order
func (p *Pizzeria) TotalBenefit() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := decimal.Zero
	for _, o := range p.processedOrders() {
		total = total.Add(p.orderBenefit(o))
	}
	return total
}

// PizzaCountPerClient maps every registered client's email to the number of
// pizzas across their PROCESSED orders
func (p *Pizzeria) PizzaCountPerClient() map[string]int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]int, len(p.accounts))
	for email := range p.accounts {
		out[email] = 0
	}
	for _, o := range p.processedOrders() {
		out[o.owner] += len(o.pizzas)
	}
	return out
}

// BenefitPerClient maps every registered client's email to the summed
// benefit of their PROCESSED orders
func (p *Pizzeria) BenefitPerClient() map[string]decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]decimal.Decimal, len(p.accounts))
	for email := range p.accounts {
		out[email] = decimal.Zero
	}
	for _, o := range p.processedOrders() {
		out[o.owner] = out[o.owner].Add(p.orderBenefit(o))
	}
	return out
}

func (p *Pizzeria) orderCount(pizzaName string) int {
	n := 0
	for _, o := range p.orders {
		if o.status == models.OrderProcessed {
			n += o.count(pizzaName)
		}
	}
	return n
}

// OrderCountForPizza counts the occurrences of a pizza across PROCESSED orders
func (p *Pizzeria) OrderCountForPizza(pizzaName string) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if _, err := p.lookupPizza(pizzaName); err != nil {
		return 0, err
	}
	return p.orderCount(pizzaName), nil
}

// PizzasRankedByOrderCount lists the catalog, most ordered first. Ties are broken by name.
func (p *Pizzeria) PizzasRankedByOrderCount() []models.Pizza {
	p.mu.RLock()
	defer p.mu.RUnlock()

	counts := make(map[string]int, len(p.pizzas))
	for name := range p.pizzas {
		counts[name] = p.orderCount(name)
	}
	ranked := p.snapshotPizzas(func(*pizza) bool { return true })
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i].Name] > counts[ranked[j].Name]
	})
	return ranked
}
