package pizzeria

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

func TestRegisterFailureKinds(t *testing.T) {
	p, _ := newTestPizzeria(t)
	require.NoError(t, p.Register("ana@example.com", "secret", validInfo))

	badName := validInfo
	badName.LastName = "Dur4nd"
	blankAddress := validInfo
	blankAddress.Address = "   "
	negativeAge := validInfo
	negativeAge.Age = -1

	testCases := []struct {
		name     string
		email    string
		password string
		info     models.PersonalInfo
		want     error
	}{
		{"blank email", "", "secret", validInfo, ErrInvalidCredentials},
		{"blank password", "bob@example.com", " ", validInfo, ErrInvalidCredentials},
		{"credentials checked before profile", "", "secret", badName, ErrInvalidCredentials},
		{"digit in name", "bob@example.com", "secret", badName, ErrInvalidProfile},
		{"blank address", "bob@example.com", "secret", blankAddress, ErrInvalidProfile},
		{"negative age", "bob@example.com", "secret", negativeAge, ErrInvalidProfile},
		{"profile checked before email", "not-an-email", "secret", badName, ErrInvalidProfile},
		{"malformed email", "not-an-email", "secret", validInfo, ErrInvalidEmail},
		{"email checked before duplicate", "ana@", "secret", validInfo, ErrInvalidEmail},
		{"duplicate", "ana@example.com", "other", validInfo, ErrDuplicateAccount},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Register(tt.email, tt.password, tt.info)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}

	assert.Len(t, p.Clients(), 1, "failed registrations leave no account behind")
}

func TestRegisterAcceptsAccentedNames(t *testing.T) {
	p, _ := newTestPizzeria(t)
	info := models.PersonalInfo{LastName: "Le Hénaff-O'Neil", FirstName: "Zoé", Address: "3 place", Age: 0}
	assert.NoError(t, p.Register("zoe@example.com", "pw", info))
}

func TestLogin(t *testing.T) {
	p, _ := newTestPizzeria(t)
	require.NoError(t, p.Register("ana@example.com", "secret", validInfo))

	_, ok := p.Login("ana@example.com", "wrong")
	assert.False(t, ok)
	_, ok = p.Login("nobody@example.com", "secret")
	assert.False(t, ok)
	_, ok = p.Login("", "")
	assert.False(t, ok)

	first, ok := p.Login("ana@example.com", "secret")
	require.True(t, ok)
	second, ok := p.Login("ana@example.com", "secret")
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID, "each login opens its own session")

	account, err := p.CurrentClient(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", account.Email)
	assert.NotEqual(t, "secret", account.PasswordHash)
}

func TestLogout(t *testing.T) {
	p, _ := newTestPizzeria(t)
	sid := connect(t, p, "ana@example.com")

	require.NoError(t, p.Logout(sid))
	assert.ErrorIs(t, p.Logout(sid), ErrNotConnected)
	assert.ErrorIs(t, p.Logout(""), ErrNotConnected)

	_, err := p.BeginOrder(sid)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSessionExpiresWhenIdle(t *testing.T) {
	p, _ := newTestPizzeria(t, WithSessionTTL(50*time.Millisecond))
	sid := connect(t, p, "ana@example.com")

	_, err := p.CurrentClient(sid)
	require.NoError(t, err)

	time.Sleep(120 * time.Millisecond)

	_, err = p.CurrentClient(sid)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestSessionWithoutTTLNeverExpires(t *testing.T) {
	p, _ := newTestPizzeria(t, WithSessionTTL(0))
	require.NoError(t, p.Register("ana@example.com", "secret", validInfo))

	sess, ok := p.Login("ana@example.com", "secret")
	require.True(t, ok)
	assert.True(t, sess.ExpiresAt.IsZero())
}

func TestLoginReportsExpiryFromClock(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	p, _ := newTestPizzeria(t, WithClock(func() time.Time { return now }), WithSessionTTL(30*time.Minute))
	require.NoError(t, p.Register("ana@example.com", "secret", validInfo))

	sess, ok := p.Login("ana@example.com", "secret")
	require.True(t, ok)
	assert.Equal(t, now.Add(30*time.Minute), sess.ExpiresAt)
}

func TestChangePassword(t *testing.T) {
	p, _ := newTestPizzeria(t)
	sid := connect(t, p, "ana@example.com")

	assert.ErrorIs(t, p.ChangePassword(sid, "wrong", "new-secret"), ErrInvalidCredentials)
	assert.ErrorIs(t, p.ChangePassword(sid, "secret", " "), ErrInvalidCredentials)
	assert.ErrorIs(t, p.ChangePassword("nope", "secret", "new-secret"), ErrNotConnected)
	assert.ErrorIs(t, p.ChangePassword("nope", "secret", " "), ErrNotConnected)
	assert.ErrorIs(t, p.ChangePassword("", "secret", ""), ErrNotConnected)

	require.NoError(t, p.ChangePassword(sid, "secret", "new-secret"))

	_, ok := p.Login("ana@example.com", "secret")
	assert.False(t, ok)
	_, ok = p.Login("ana@example.com", "new-secret")
	assert.True(t, ok)
}

func TestClientsSortedByEmail(t *testing.T) {
	p, _ := newTestPizzeria(t)
	for _, email := range []string{"zoe@example.com", "ana@example.com", "marc@example.com"} {
		require.NoError(t, p.Register(email, "pw", validInfo))
	}

	clients := p.Clients()
	require.Len(t, clients, 3)
	assert.Equal(t, "ana@example.com", clients[0].Email)
	assert.Equal(t, "zoe@example.com", clients[2].Email)
}
