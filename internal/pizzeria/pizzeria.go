// Package pizzeria holds the back-office aggregate: catalog, client directory,
// sessions, order ledger, filters, evaluations and statistics. Every exported
// method is safe for concurrent use; state is guarded by a single lock so each
// operation is atomic with respect to the others.
package pizzeria

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// PhotoChecker confirms that a path names an existing image file
type PhotoChecker interface {
	Check(path string) error
}

// Recorder receives order lifecycle events
type Recorder interface {
	Record(events ...models.OrderEvent) error
}

type Pizzeria struct {
	mu sync.RWMutex

	logger       logrus.FieldLogger
	clock        func() time.Time
	validate     *validator.Validate
	passwordCost int
	photos       PhotoChecker
	recorder     Recorder

	ingredients map[string]*ingredient
	forbidden   map[string]map[models.PizzaType]struct{}
	pizzas      map[string]*pizza
	accounts    map[string]*models.ClientAccount
	orders      map[string]*order
	orderSeq    uint64
	sessions    *sessionStore
}

type Option func(*Pizzeria)

// WithLogger replaces the package logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Pizzeria) { p.logger = logger }
}

// WithClock sets the time source used for order timestamps, journal events and
// the ExpiresAt reported by Login. Idle sessions still expire on wall-clock time.
func WithClock(clock func() time.Time) Option {
	return func(p *Pizzeria) { p.clock = clock }
}

// WithPasswordCost sets the bcrypt cost used to hash client passwords
func WithPasswordCost(cost int) Option {
	return func(p *Pizzeria) { p.passwordCost = cost }
}

// WithSessionTTL sets how long an idle session stays valid. Zero disables expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(p *Pizzeria) { p.sessions = newSessionStore(ttl) }
}

func WithPhotoChecker(photos PhotoChecker) Option {
	return func(p *Pizzeria) { p.photos = photos }
}

// WithRecorder sets the sink for order lifecycle events
func WithRecorder(recorder Recorder) Option {
	return func(p *Pizzeria) { p.recorder = recorder }
}

// New creates an empty pizzeria
func New(opts ...Option) *Pizzeria {
	p := &Pizzeria{
		logger:       log,
		clock:        time.Now,
		validate:     newValidator(),
		passwordCost: bcrypt.DefaultCost,
		ingredients:  make(map[string]*ingredient),
		forbidden:    make(map[string]map[models.PizzaType]struct{}),
		pizzas:       make(map[string]*pizza),
		accounts:     make(map[string]*models.ClientAccount),
		orders:       make(map[string]*order),
		sessions:     newSessionStore(time.Hour),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// record forwards events to the recorder. Journal failures never fail the operation.
func (p *Pizzeria) record(events ...models.OrderEvent) {
	if p.recorder == nil || len(events) == 0 {
		return
	}
	if err := p.recorder.Record(events...); err != nil {
		p.logger.WithError(err).WithField("order_id", events[0].OrderID).Warn("Failed to record order events")
	}
}
