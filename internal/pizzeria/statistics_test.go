package pizzeria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// seedStatistics gives Reine a benefit of 0.8 and leaves Marinara at its minimum price.
// Ana gets two processed Reine and one validated Marinara, Bob one processed Marinara.
func seedStatistics(t *testing.T) (*Pizzeria, models.Order) {
	p, _ := newTestPizzeria(t)
	seedReine(t, p)
	_, err := p.CreatePizza("Marinara", models.PizzaTypeVegetarian)
	require.NoError(t, err)
	require.NoError(t, p.AddIngredientToPizza("Marinara", "tomate"))
	require.NoError(t, p.SetFixedPrice("Reine", price("5.0")))

	ana := connect(t, p, "ana@example.com")
	bob := connect(t, p, "bob@example.com")
	connect(t, p, "zoe@example.com")

	anaOrder := orderAndValidate(t, p, ana, "Reine", "Reine")
	orderAndValidate(t, p, bob, "Marinara")
	p.ClaimPendingOrders()
	orderAndValidate(t, p, ana, "Marinara")
	return p, anaOrder
}

func TestBenefitPerPizza(t *testing.T) {
	p, _ := seedStatistics(t)

	benefits := p.BenefitPerPizza()
	require.Len(t, benefits, 2)
	assert.Equal(t, "0.8", benefits["Reine"].String())
	assert.True(t, benefits["Marinara"].IsZero())

	// A fixed price left below a raised minimum never yields a negative benefit
	require.NoError(t, p.SetIngredientPrice("fromage", price("10")))
	assert.True(t, p.BenefitPerPizza()["Reine"].IsZero())
}

func TestBenefitOfOrderAndTotal(t *testing.T) {
	p, anaOrder := seedStatistics(t)

	benefit, err := p.BenefitOfOrder(anaOrder.ID)
	require.NoError(t, err)
	assert.Equal(t, "1.6", benefit.String())

	_, err = p.BenefitOfOrder("unknown")
	assert.ErrorIs(t, err, ErrOrder)

	assert.Equal(t, "1.6", p.TotalBenefit().String())
}

func TestPerClientStatistics(t *testing.T) {
	p, _ := seedStatistics(t)

	counts := p.PizzaCountPerClient()
	assert.Equal(t, map[string]int{"ana@example.com": 2, "bob@example.com": 1, "zoe@example.com": 0}, counts)

	benefits := p.BenefitPerClient()
	require.Len(t, benefits, 3)
	assert.Equal(t, "1.6", benefits["ana@example.com"].String())
	assert.True(t, benefits["bob@example.com"].IsZero())
	assert.True(t, benefits["zoe@example.com"].IsZero())
}

func TestOrderCountsOnlyProcessed(t *testing.T) {
	p, _ := seedStatistics(t)

	count, err := p.OrderCountForPizza("Reine")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = p.OrderCountForPizza("Marinara")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the validated but unclaimed Marinara is not counted")

	_, err = p.OrderCountForPizza("Ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPizzasRankedByOrderCount(t *testing.T) {
	p, _ := seedStatistics(t)
	_, err := p.CreatePizza("Calzone", models.PizzaTypeMeat)
	require.NoError(t, err)

	ranked := p.PizzasRankedByOrderCount()
	assert.Equal(t, []string{"Reine", "Marinara", "Calzone"}, pizzaNames(ranked))

	p.ClaimPendingOrders()
	ranked = p.PizzasRankedByOrderCount()
	assert.Equal(t, []string{"Marinara", "Reine", "Calzone"}, pizzaNames(ranked), "ties broken by name")
}
