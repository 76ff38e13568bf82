package pizzeria

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// order is a ledger entry. The owner is the registration email of the client.
type order struct {
	id        string
	seq       uint64
	createdAt time.Time
	owner     string
	pizzas    []string
	status    models.OrderStatus
}

func (o *order) snapshot() models.Order {
	return models.Order{
		ID:        o.id,
		CreatedAt: o.createdAt,
		Owner:     o.owner,
		Pizzas:    append([]string{}, o.pizzas...),
		Status:    o.status,
	}
}

func (o *order) count(pizzaName string) int {
	n := 0
	for _, name := range o.pizzas {
		if name == pizzaName {
			n++
		}
	}
	return n
}

// advance moves an order one step forward in its lifecycle
func advance(o *order, next models.OrderStatus) error {
	if !o.status.CanTransitionTo(next) {
		return errors.Wrapf(ErrOrder, "order %q cannot move from %s to %s", o.id, o.status, next)
	}
	o.status = next
	return nil
}

func (p *Pizzeria) event(o *order, kind models.OrderEventKind) models.OrderEvent {
	return models.OrderEvent{OrderID: o.id, ClientEmail: o.owner, Kind: kind, OccurredAt: p.clock()}
}

// selectOrders returns the ledger entries matching keep, oldest first
func (p *Pizzeria) selectOrders(keep func(*order) bool) []*order {
	out := make([]*order, 0)
	for _, o := range p.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].createdAt.Equal(out[j].createdAt) {
			return out[i].createdAt.Before(out[j].createdAt)
		}
		return out[i].seq < out[j].seq
	})
	return out
}

func snapshotOrders(orders []*order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.snapshot())
	}
	return out
}

// ownedOrder resolves an order that the session's client may still modify
func (p *Pizzeria) ownedOrder(account *models.ClientAccount, orderID string) (*order, error) {
	o, ok := p.orders[orderID]
	if !ok {
		return nil, errors.Wrapf(ErrOrder, "order %q is unknown", orderID)
	}
	if o.owner != account.Email {
		return nil, errors.Wrapf(ErrOrder, "order %q does not belong to the connected client", orderID)
	}
	if o.status != models.OrderCreated {
		return nil, errors.Wrapf(ErrOrder, "order %q is %s and can no longer change", orderID, o.status)
	}
	return o, nil
}

// BeginOrder opens an empty order for the connected client
func (p *Pizzeria) BeginOrder(sessionID string) (models.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return models.Order{}, err
	}
	p.orderSeq++
	o := &order{
		id:        uuid.New().String(),
		seq:       p.orderSeq,
		createdAt: p.clock(),
		owner:     account.Email,
		pizzas:    []string{},
		status:    models.OrderCreated,
	}
	p.orders[o.id] = o
	p.logger.WithFields(logrus.Fields{"order_id": o.id, "email": o.owner}).Info("Order begun")
	p.record(p.event(o, models.OrderEventBegun))
	return o.snapshot(), nil
}

// AddPizza appends count units of a catalog pizza to an order in CREATED state
func (p *Pizzeria) AddPizza(sessionID, orderID, pizzaName string, count int) (models.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return models.Order{}, err
	}
	o, err := p.ownedOrder(account, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if _, err := p.lookupPizza(pizzaName); err != nil {
		return models.Order{}, err
	}
	if count <= 0 {
		return models.Order{}, errors.Wrapf(ErrInvalidArgument, "pizza count must be positive, got %d", count)
	}
	for i := 0; i < count; i++ {
		o.pizzas = append(o.pizzas, pizzaName)
	}

	evt := p.event(o, models.OrderEventPizzaAdded)
	evt.Pizza, evt.Quantity = pizzaName, count
	p.record(evt)
	return o.snapshot(), nil
}

// RemovePizza takes one unit of a pizza out of an order in CREATED state
func (p *Pizzeria) RemovePizza(sessionID, orderID, pizzaName string) (models.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return models.Order{}, err
	}
	o, err := p.ownedOrder(account, orderID)
	if err != nil {
		return models.Order{}, err
	}
	idx := -1
	for i, name := range o.pizzas {
		if name == pizzaName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Order{}, errors.Wrapf(ErrOrder, "pizza %q is not in order %q", pizzaName, orderID)
	}
	o.pizzas = append(o.pizzas[:idx], o.pizzas[idx+1:]...)

	evt := p.event(o, models.OrderEventPizzaRemoved)
	evt.Pizza, evt.Quantity = pizzaName, 1
	p.record(evt)
	return o.snapshot(), nil
}

// ValidateOrder moves an order from CREATED to VALIDATED
func (p *Pizzeria) ValidateOrder(sessionID, orderID string) (models.Order, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return models.Order{}, err
	}
	o, err := p.ownedOrder(account, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if err := advance(o, models.OrderValidated); err != nil {
		return models.Order{}, err
	}
	p.logger.WithFields(logrus.Fields{"order_id": o.id, "email": o.owner, "pizzas": len(o.pizzas)}).Info("Order validated")
	p.record(p.event(o, models.OrderEventValidated))
	return o.snapshot(), nil
}

// CancelOrder removes an order in CREATED state from the ledger
func (p *Pizzeria) CancelOrder(sessionID, orderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return err
	}
	o, err := p.ownedOrder(account, orderID)
	if err != nil {
		return err
	}
	delete(p.orders, o.id)
	p.logger.WithFields(logrus.Fields{"order_id": o.id, "email": o.owner}).Info("Order cancelled")
	p.record(p.event(o, models.OrderEventCancelled))
	return nil
}

// OrdersInProgress lists the connected client's CREATED orders, oldest first
func (p *Pizzeria) OrdersInProgress(sessionID string) ([]models.Order, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshotOrders(p.selectOrders(func(o *order) bool {
		return o.owner == account.Email && o.status == models.OrderCreated
	})), nil
}

// PastOrders lists the connected client's validated or processed orders, oldest first
func (p *Pizzeria) PastOrders(sessionID string) ([]models.Order, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshotOrders(p.selectOrders(func(o *order) bool {
		return o.owner == account.Email && o.status != models.OrderCreated
	})), nil
}

func (p *Pizzeria) processedOrders() []*order {
	return p.selectOrders(func(o *order) bool { return o.status == models.OrderProcessed })
}

// ProcessedOrders lists every PROCESSED order, oldest first
func (p *Pizzeria) ProcessedOrders() []models.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return snapshotOrders(p.processedOrders())
}

// ProcessedOrdersForClient lists the PROCESSED orders of one client, oldest first
func (p *Pizzeria) ProcessedOrdersForClient(email string) ([]models.Order, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if _, ok := p.accounts[email]; !ok {
		return nil, errors.Wrapf(ErrNotFound, "client %q", email)
	}
	return snapshotOrders(p.selectOrders(func(o *order) bool {
		return o.owner == email && o.status == models.OrderProcessed
	})), nil
}

// PeekPendingOrders lists the VALIDATED orders awaiting processing without claiming them
func (p *Pizzeria) PeekPendingOrders() []models.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return snapshotOrders(p.selectOrders(func(o *order) bool { return o.status == models.OrderValidated }))
}

// ClaimPendingOrders is DESTRUCTIVE: it returns every VALIDATED order, oldest
// first, and marks each of them PROCESSED. A second call returns nothing until
// more orders are validated.
func (p *Pizzeria) ClaimPendingOrders() []models.Order {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending := p.selectOrders(func(o *order) bool { return o.status == models.OrderValidated })
	events := make([]models.OrderEvent, 0, len(pending))
	for _, o := range pending {
		if err := advance(o, models.OrderProcessed); err != nil {
			continue
		}
		events = append(events, p.event(o, models.OrderEventProcessed))
	}
	if len(pending) > 0 {
		p.logger.WithField("orders", len(pending)).Info("Pending orders claimed")
	}
	p.record(events...)
	return snapshotOrders(pending)
}
