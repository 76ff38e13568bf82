package journal

import (
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"gorm.io/gorm"
)

// OrderJournal stores the lifecycle events of orders
type OrderJournal interface {
	// Record appends events in one transaction
	Record(events ...models.OrderEvent) error
	// History returns the events of one order, oldest first
	History(orderID string) ([]models.OrderEvent, error)
	// ClientHistory returns the events of every order of a client, oldest first
	ClientHistory(email string) ([]models.OrderEvent, error)
}

type orderJournal struct {
	db *gorm.DB
}

// NewOrderJournal creates a journal backed by db. The caller migrates models.OrderEvent.
func NewOrderJournal(db *gorm.DB) OrderJournal {
	return &orderJournal{db: db}
}

func (j *orderJournal) Record(events ...models.OrderEvent) error {
	if len(events) == 0 {
		return nil
	}
	return j.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&events).Error
	})
}

func (j *orderJournal) History(orderID string) ([]models.OrderEvent, error) {
	var events []models.OrderEvent
	if err := j.db.Where("order_id = ?", orderID).Order("occurred_at, id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (j *orderJournal) ClientHistory(email string) ([]models.OrderEvent, error) {
	var events []models.OrderEvent
	if err := j.db.Where("client_email = ?", email).Order("occurred_at, id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
