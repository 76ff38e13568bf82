package pizzeria

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

const (
	MinNote = 0
	MaxNote = 5

	// Sentinel averages returned by AverageNote
	NoteUnknownPizza  = -2.0
	NoteNoEvaluations = -1.0
)

// AddEvaluation rates a pizza on behalf of the connected client. The client
// must have a validated or processed order containing the pizza. An out of
// range note or a second evaluation of the same pizza returns false.
func (p *Pizzeria) AddEvaluation(sessionID, pizzaName string, note int, comment string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return false, err
	}
	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return false, err
	}
	if note < MinNote || note > MaxNote {
		return false, nil
	}

	ordered := false
	for _, o := range p.orders {
		if o.owner == account.Email && o.status != models.OrderCreated && o.count(pizzaName) > 0 {
			ordered = true
			break
		}
	}
	if !ordered {
		return false, errors.Wrapf(ErrOrder, "client never ordered pizza %q", pizzaName)
	}

	for _, e := range pz.evaluations {
		if e.Author == account.Email {
			return false, nil
		}
	}

	pz.evaluations = append(pz.evaluations, models.Evaluation{
		Author:  account.Email,
		Note:    note,
		Comment: strings.TrimSpace(comment),
	})
	p.logger.WithFields(logrus.Fields{"pizza": pizzaName, "email": account.Email, "note": note}).Info("Evaluation added")
	return true, nil
}

// ListEvaluations returns a pizza's evaluations in the order they were made
func (p *Pizzeria) ListEvaluations(pizzaName string) ([]models.Evaluation, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pz, err := p.lookupPizza(pizzaName)
	if err != nil {
		return nil, err
	}
	return append([]models.Evaluation{}, pz.evaluations...), nil
}

// AverageNote returns the mean note of a pizza, NoteUnknownPizza when the
// pizza does not exist and NoteNoEvaluations when nobody rated it yet.
func (p *Pizzeria) AverageNote(pizzaName string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pz, ok := p.pizzas[pizzaName]
	if !ok {
		return NoteUnknownPizza
	}
	if len(pz.evaluations) == 0 {
		return NoteNoEvaluations
	}
	total := 0
	for _, e := range pz.evaluations {
		total += e.Note
	}
	return float64(total) / float64(len(pz.evaluations))
}
