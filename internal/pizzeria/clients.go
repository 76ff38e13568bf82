package pizzeria

import (
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// personNamePattern accepts letters, spaces, hyphens and apostrophes
var personNamePattern = regexp.MustCompile(`^[\p{L} '\-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	return v
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Register creates a client account. A failed registration returns exactly one
// of ErrInvalidCredentials, ErrInvalidProfile, ErrInvalidEmail or
// ErrDuplicateAccount, checked in that order.
func (p *Pizzeria) Register(email, password string, info models.PersonalInfo) error {
	if blank(email) || blank(password) {
		return ErrInvalidCredentials
	}
	if err := p.validate.Struct(info); err != nil {
		return errors.Wrap(ErrInvalidProfile, err.Error())
	}
	if err := p.validate.Var(email, "email"); err != nil {
		return errors.Wrapf(ErrInvalidEmail, "%q", email)
	}

	// Hash outside the lock, bcrypt is slow on purpose
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.passwordCost)
	if err != nil {
		return errors.Wrap(ErrInvalidCredentials, err.Error())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.accounts[email]; exists {
		return errors.Wrapf(ErrDuplicateAccount, "%q", email)
	}
	p.accounts[email] = &models.ClientAccount{
		Email:        email,
		PasswordHash: string(hash),
		Info:         info,
		CreatedAt:    p.clock(),
	}
	p.logger.WithField("email", email).Info("Client registered")
	return nil
}

// Login opens a session when the email and password match a registered
// account. A mismatch is not an error: it returns false.
func (p *Pizzeria) Login(email, password string) (models.Session, bool) {
	if blank(email) || blank(password) {
		return models.Session{}, false
	}

	p.mu.RLock()
	account, ok := p.accounts[email]
	var hash string
	if ok {
		hash = account.PasswordHash
	}
	p.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		p.logger.WithField("email", email).Debug("Login rejected")
		return models.Session{}, false
	}

	sess := p.sessions.open(email)
	p.logger.WithField("email", email).Info("Client logged in")
	return models.Session{ID: sess.id, Email: email, ExpiresAt: p.sessions.expiresAt(p.clock())}, true
}

// Logout closes a session
func (p *Pizzeria) Logout(sessionID string) error {
	if sessionID == "" || !p.sessions.close(sessionID) {
		return ErrNotConnected
	}
	return nil
}

// CurrentClient returns the account a session belongs to
func (p *Pizzeria) CurrentClient(sessionID string) (models.ClientAccount, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return models.ClientAccount{}, err
	}
	return *account, nil
}

// ChangePassword replaces the connected client's password
func (p *Pizzeria) ChangePassword(sessionID, oldPassword, newPassword string) error {
	p.mu.RLock()
	_, _, err := p.requireSession(sessionID)
	p.mu.RUnlock()
	if err != nil {
		return err
	}
	if blank(newPassword) {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), p.passwordCost)
	if err != nil {
		return errors.Wrap(ErrInvalidCredentials, err.Error())
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// the session may have been closed while hashing
	_, account, err := p.requireSession(sessionID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)) != nil {
		return errors.Wrap(ErrInvalidCredentials, "current password does not match")
	}
	account.PasswordHash = string(hash)
	p.logger.WithFields(logrus.Fields{"email": account.Email}).Info("Client password changed")
	return nil
}

// Clients lists every registered account sorted by email
func (p *Pizzeria) Clients() []models.ClientAccount {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.ClientAccount, 0, len(p.accounts))
	for _, account := range p.accounts {
		out = append(out, *account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
