package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levitation-labs/invoicegen/internal/api"
)

func fillSignup(a *App, name, email, password string) {
	a.signup.name.SetValue(name)
	a.signup.email.SetValue(email)
	a.signup.password.SetValue(password)
}

func TestSignupValidationBlocksSubmit(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteSignup, false)
	fillSignup(&a, "John3", "a@b.co", "Aa1!aa")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "invalid form never reaches the network")
	assert.Equal(t, "Name must contain only letters and spaces", a.signup.errMsg)
	assert.Zero(t, fake.registerCalls)
}

func TestSignupSuccessNavigatesToLogin(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteSignup, false)
	fillSignup(&a, "John Smith", "a@b.co", "Aa1!aa")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, a.signup.submitting)

	a, _ = step(t, a, cmd())

	assert.False(t, a.signup.submitting)
	assert.Equal(t, RouteLogin, a.route)
	require.NotNil(t, a.toast)
	assert.Equal(t, "User registered successfully", a.toast.title)
	assert.Equal(t, 1, fake.registerCalls)
}

func TestSignupUserAlreadyExists(t *testing.T) {
	fake := &fakeBackend{registerErr: &api.ServerError{Status: 409, Message: "User already exists"}}
	a := newTestApp(t, fake, RouteSignup, false)
	fillSignup(&a, "John Smith", "a@b.co", "Aa1!aa")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = step(t, a, cmd())

	assert.Equal(t, RouteSignup, a.route, "stays on signup")
	require.NotNil(t, a.toast)
	assert.Equal(t, "Account Already Exists", a.toast.title)
	assert.Contains(t, a.toast.desc, "ctrl+l")

	// the offered action: ctrl+l goes straight to login
	a, _ = step(t, a, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, RouteLogin, a.route)
}

func TestSignupUserAlreadyExistsMessageIsTrimmed(t *testing.T) {
	fake := &fakeBackend{registerErr: &api.ServerError{Status: 409, Message: "  User already exists  "}}
	a := newTestApp(t, fake, RouteSignup, false)
	fillSignup(&a, "John Smith", "a@b.co", "Aa1!aa")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = step(t, a, cmd())

	require.NotNil(t, a.toast)
	assert.Equal(t, "Account Already Exists", a.toast.title)
}

func TestSignupGenericServerError(t *testing.T) {
	fake := &fakeBackend{registerErr: &api.ServerError{Status: 400, Message: "Email is invalid"}}
	a := newTestApp(t, fake, RouteSignup, false)
	fillSignup(&a, "John Smith", "a@b.co", "Aa1!aa")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = step(t, a, cmd())

	assert.Equal(t, "Email is invalid", a.signup.errMsg)
	require.NotNil(t, a.toast)
	assert.Equal(t, "Registration Failed", a.toast.title)
	assert.Equal(t, "Email is invalid", a.toast.desc)
}

func TestSignupNetworkError(t *testing.T) {
	fake := &fakeBackend{registerErr: errors.New("dial tcp: connection refused")}
	a := newTestApp(t, fake, RouteSignup, false)
	fillSignup(&a, "John Smith", "a@b.co", "Aa1!aa")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	a, _ = step(t, a, cmd())

	assert.False(t, a.signup.submitting)
	assert.Equal(t, "An error occurred while submitting the form", a.signup.errMsg)
	require.NotNil(t, a.toast)
	assert.Equal(t, "Network Error", a.toast.title)
}
