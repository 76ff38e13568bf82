package pizzeria

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// priceMarkup is applied to the ingredient cost to obtain the minimum sale price
var priceMarkup = decimal.RequireFromString("1.4")

type ingredient struct {
	name  string
	price decimal.Decimal
}

// pizza references ingredients by name, so ingredient price changes are
// visible immediately in its computed price.
type pizza struct {
	name        string
	kind        models.PizzaType
	ingredients map[string]struct{}
	fixedPrice  *decimal.Decimal
	evaluations []models.Evaluation
	photo       string
}

// CreateIngredient adds an ingredient to the catalog
func (p *Pizzeria) CreateIngredient(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidArgument, "ingredient name is empty")
	}
	if !price.IsPositive() {
		return errors.Wrapf(ErrInvalidArgument, "ingredient price must be positive, got %s", price)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.ingredients[name]; exists {
		return errors.Wrapf(ErrDuplicateKey, "ingredient %q", name)
	}
	p.ingredients[name] = &ingredient{name: name, price: price}
	p.logger.WithFields(logrus.Fields{"ingredient": name, "price": price.String()}).Info("Ingredient created")
	return nil
}

// SetIngredientPrice changes an ingredient's price in place
func (p *Pizzeria) SetIngredientPrice(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return errors.Wrap(ErrInvalidArgument, "ingredient name is empty")
	}
	if !price.IsPositive() {
		return errors.Wrapf(ErrInvalidArgument, "ingredient price must be positive, got %s", price)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ing, ok := p.ingredients[name]
	if !ok {
		return errors.Wrapf(ErrNotFound, "ingredient %q", name)
	}
	ing.price = price
	p.logger.WithFields(logrus.Fields{"ingredient": name, "price": price.String()}).Info("Ingredient price changed")
	return nil
}

// Ingredients lists the catalog ingredients sorted by name
func (p *Pizzeria) Ingredients() []models.Ingredient {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.Ingredient, 0, len(p.ingredients))
	for _, ing := range p.ingredients {
		out = append(out, models.Ingredient{Name: ing.name, Price: ing.price})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ForbidIngredient bans an ingredient from pizzas of the given type.
// It reports whether the rule is new.
func (p *Pizzeria) ForbidIngredient(name string, kind models.PizzaType) (bool, error) {
	if !kind.Valid() {
		return false, errors.Wrapf(ErrNotFound, "pizza type %q", kind)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ingredients[name]; !ok {
		return false, errors.Wrapf(ErrNotFound, "ingredient %q", name)
	}
	types, ok := p.forbidden[name]
	if !ok {
		types = make(map[models.PizzaType]struct{})
		p.forbidden[name] = types
	}
	if _, exists := types[kind]; exists {
		return false, nil
	}
	types[kind] = struct{}{}
	p.logger.WithFields(logrus.Fields{"ingredient": name, "type": kind}).Info("Ingredient forbidden")
	return true, nil
}

func (p *Pizzeria) isForbidden(ingredientName string, kind models.PizzaType) bool {
	_, banned := p.forbidden[ingredientName][kind]
	return banned
}

// CreatePizza adds a pizza with no ingredients and no fixed price
func (p *Pizzeria) CreatePizza(name string, kind models.PizzaType) (models.Pizza, error) {
	if strings.TrimSpace(name) == "" {
		return models.Pizza{}, errors.Wrap(ErrInvalidArgument, "pizza name is empty")
	}
	if !kind.Valid() {
		return models.Pizza{}, errors.Wrapf(ErrInvalidArgument, "unknown pizza type %q", kind)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.pizzas[name]; exists {
		return models.Pizza{}, errors.Wrapf(ErrDuplicateKey, "pizza %q", name)
	}
	pz := &pizza{name: name, kind: kind, ingredients: make(map[string]struct{})}
	p.pizzas[name] = pz
	p.logger.WithFields(logrus.Fields{"pizza": name, "type": kind}).Info("Pizza created")
	return p.snapshotPizza(pz), nil
}

func (p *Pizzeria) lookupPizza(name string) (*pizza, error) {
	pz, ok := p.pizzas[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "pizza %q", name)
	}
	return pz, nil
}

// AddIngredientToPizza puts an ingredient on a pizza. Adding an ingredient
// already present succeeds without change.
func (p *Pizzeria) AddIngredientToPizza(pizzaName, ingredientName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return err
	}
	if _, ok := p.ingredients[ingredientName]; !ok {
		return errors.Wrapf(ErrNotFound, "ingredient %q", ingredientName)
	}
	if p.isForbidden(ingredientName, pz.kind) {
		return errors.Wrapf(ErrForbidden, "%q on %s pizza %q", ingredientName, pz.kind, pizzaName)
	}
	pz.ingredients[ingredientName] = struct{}{}
	return nil
}

// RemoveIngredientFromPizza takes an ingredient off a pizza
func (p *Pizzeria) RemoveIngredientFromPizza(pizzaName, ingredientName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return err
	}
	if _, ok := p.ingredients[ingredientName]; !ok {
		return errors.Wrapf(ErrNotFound, "ingredient %q", ingredientName)
	}
	if _, ok := pz.ingredients[ingredientName]; !ok {
		return errors.Wrapf(ErrNotFound, "ingredient %q is not on pizza %q", ingredientName, pizzaName)
	}
	delete(pz.ingredients, ingredientName)
	return nil
}

// ListForbiddenIngredients returns the ingredients on a pizza that are
// forbidden for its type, which happens when a rule is added after assembly.
func (p *Pizzeria) ListForbiddenIngredients(pizzaName string) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return nil, err
	}
	banned := make([]string, 0)
	for name := range pz.ingredients {
		if p.isForbidden(name, pz.kind) {
			banned = append(banned, name)
		}
	}
	sort.Strings(banned)
	return banned, nil
}

// minimumPrice is the ingredient cost times the markup, rounded up to one decimal
func (p *Pizzeria) minimumPrice(pz *pizza) decimal.Decimal {
	sum := decimal.Zero
	for name := range pz.ingredients {
		sum = sum.Add(p.ingredients[name].price)
	}
	return sum.Mul(priceMarkup).RoundCeil(1)
}

func (p *Pizzeria) salePrice(pz *pizza) decimal.Decimal {
	if pz.fixedPrice != nil {
		return *pz.fixedPrice
	}
	return p.minimumPrice(pz)
}

// benefit is the margin over the minimum price, never negative
func (p *Pizzeria) benefit(pz *pizza) decimal.Decimal {
	return decimal.Max(p.salePrice(pz).Sub(p.minimumPrice(pz)), decimal.Zero)
}

// MinimumPrice returns the lowest price a pizza may be sold at
func (p *Pizzeria) MinimumPrice(pizzaName string) (decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return decimal.Zero, err
	}
	return p.minimumPrice(pz), nil
}

// SalePrice returns the fixed price if one is set, else the minimum price
func (p *Pizzeria) SalePrice(pizzaName string) (decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return decimal.Zero, err
	}
	return p.salePrice(pz), nil
}

// SetFixedPrice overrides the sale price. The price may not be below the minimum price.
func (p *Pizzeria) SetFixedPrice(pizzaName string, price decimal.Decimal) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return err
	}
	minimum := p.minimumPrice(pz)
	if price.LessThan(minimum) {
		return errors.Wrapf(ErrInvalidArgument, "price %s is below the minimum price %s", price, minimum)
	}
	pz.fixedPrice = &price
	p.logger.WithFields(logrus.Fields{"pizza": pizzaName, "price": price.String()}).Info("Pizza price fixed")
	return nil
}

// AttachPhoto stores a photo path on a pizza once the photo checker accepts it
func (p *Pizzeria) AttachPhoto(pizzaName, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.Wrap(ErrInvalidArgument, "photo path is empty")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return err
	}
	if p.photos == nil {
		return errors.Wrap(ErrInvalidArgument, "photo storage is not configured")
	}
	if err := p.photos.Check(path); err != nil {
		return errors.Wrapf(ErrInvalidArgument, "photo %q: %v", path, err)
	}
	pz.photo = path
	return nil
}

// Pizzas lists the catalog sorted by name
func (p *Pizzeria) Pizzas() []models.Pizza {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.snapshotPizzas(func(*pizza) bool { return true })
}

// Pizza returns one catalog pizza
func (p *Pizzeria) Pizza(name string) (models.Pizza, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pz, err := p.lookupPizza(name)
	if err != nil {
		return models.Pizza{}, err
	}
	return p.snapshotPizza(pz), nil
}

func (p *Pizzeria) snapshotPizzas(keep func(*pizza) bool) []models.Pizza {
	out := make([]models.Pizza, 0, len(p.pizzas))
	for _, pz := range p.pizzas {
		if keep(pz) {
			out = append(out, p.snapshotPizza(pz))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p *Pizzeria) snapshotPizza(pz *pizza) models.Pizza {
	names := make([]string, 0, len(pz.ingredients))
	for name := range pz.ingredients {
		names = append(names, name)
	}
	sort.Strings(names)

	view := models.Pizza{
		Name:        pz.name,
		Type:        pz.kind,
		Ingredients: names,
		SalePrice:   p.salePrice(pz),
		Evaluations: append([]models.Evaluation(nil), pz.evaluations...),
		Photo:       pz.photo,
	}
	if pz.fixedPrice != nil {
		fixed := *pz.fixedPrice
		view.FixedPrice = &fixed
	}
	return view
}
