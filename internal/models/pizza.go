package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PizzaType is the category a pizza is sold under
type PizzaType string

const (
	PizzaTypeMeat       PizzaType = "MEAT"
	PizzaTypeVegetarian PizzaType = "VEGETARIAN"
	PizzaTypeRegional   PizzaType = "REGIONAL"
)

// PizzaTypes lists every known pizza type
var PizzaTypes = []PizzaType{PizzaTypeMeat, PizzaTypeVegetarian, PizzaTypeRegional}

// ParsePizzaType converts a case-insensitive name into a PizzaType
func ParsePizzaType(s string) (PizzaType, bool) {
	t := PizzaType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Valid reports whether t is one of the known pizza types
func (t PizzaType) Valid() bool {
	switch t {
	case PizzaTypeMeat, PizzaTypeVegetarian, PizzaTypeRegional:
		return true
	}
	return false
}

// Ingredient is a catalog ingredient. Its name is its identity, the price may change.
type Ingredient struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Pizza is a snapshot of a catalog pizza
type Pizza struct {
	Name        string           `json:"name"`
	Type        PizzaType        `json:"type"`
	Ingredients []string         `json:"ingredients"`
	FixedPrice  *decimal.Decimal `json:"fixed_price,omitempty"`
	SalePrice   decimal.Decimal  `json:"sale_price"`
	Evaluations []Evaluation     `json:"evaluations,omitempty"`
	Photo       string           `json:"photo,omitempty"`
}

// Evaluation is a client's rating of a pizza
type Evaluation struct {
	Author  string `json:"author"`
	Note    int    `json:"note"`
	Comment string `json:"comment,omitempty"`
}

// FilterSet holds the clauses of a pizza query; unset clauses match everything
type FilterSet struct {
	Type        *PizzaType       `json:"type,omitempty"`
	Ingredients []string         `json:"ingredients,omitempty"`
	MaxPrice    *decimal.Decimal `json:"max_price,omitempty"`
}
