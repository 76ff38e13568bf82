package pizzeria

import (
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

type memoryRecorder struct {
	mu     sync.Mutex
	events []models.OrderEvent
	err    error
}

func (r *memoryRecorder) Record(events ...models.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *memoryRecorder) kinds(orderID string) []models.OrderEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.OrderEventKind{}
	for _, e := range r.events {
		if e.OrderID == orderID {
			out = append(out, e.Kind)
		}
	}
	return out
}

func newTestPizzeria(t require.TestingT, opts ...Option) (*Pizzeria, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	base := []Option{WithLogger(logger), WithPasswordCost(bcrypt.MinCost)}
	return New(append(base, opts...)...), hook
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var validInfo = models.PersonalInfo{LastName: "Durand", FirstName: "Ana", Address: "1 rue de la Paix", Age: 30}

// connect registers a client and logs it in
func connect(t require.TestingT, p *Pizzeria, email string) string {
	require.NoError(t, p.Register(email, "secret", validInfo))
	sess, ok := p.Login(email, "secret")
	require.True(t, ok)
	return sess.ID
}

// seedReine creates tomate (1.0), fromage (2.0) and the REGIONAL pizza Reine with both
func seedReine(t require.TestingT, p *Pizzeria) {
	require.NoError(t, p.CreateIngredient("tomate", price("1.0")))
	require.NoError(t, p.CreateIngredient("fromage", price("2.0")))
	_, err := p.CreatePizza("Reine", models.PizzaTypeRegional)
	require.NoError(t, err)
	require.NoError(t, p.AddIngredientToPizza("Reine", "tomate"))
	require.NoError(t, p.AddIngredientToPizza("Reine", "fromage"))
}

// orderAndValidate places a validated order of the given pizzas for a session
func orderAndValidate(t require.TestingT, p *Pizzeria, sessionID string, pizzas ...string) models.Order {
	order, err := p.BeginOrder(sessionID)
	require.NoError(t, err)
	for _, name := range pizzas {
		_, err = p.AddPizza(sessionID, order.ID, name, 1)
		require.NoError(t, err)
	}
	order, err = p.ValidateOrder(sessionID, order.ID)
	require.NoError(t, err)
	return order
}
