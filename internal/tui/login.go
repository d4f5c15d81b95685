package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/levitation-labs/invoicegen/internal/api"
)

const carouselInterval = 3 * time.Second

// carouselSlides replace the marketing images of the web client. Purely
// cosmetic; the rotation carries no state anyone depends on.
var carouselSlides = []string{
	"Connecting People\nwith Technology",
	"Invoices ready\nin seconds",
}

func carouselTick() tea.Cmd {
	return tea.Tick(carouselInterval, func(t time.Time) tea.Msg {
		return carouselTickMsg(t)
	})
}

type loginState struct {
	email    textinput.Model
	password textinput.Model
	focus    int

	submitting bool
	errMsg     string
	reveal     bool
	slide      int
}

func newLoginState() loginState {
	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "Enter Email ID"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "Enter the Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return loginState{email: email, password: password}
}

func (a *App) focusLogin(i int) {
	a.login.focus = i
	if i == 0 {
		a.login.email.Focus()
		a.login.password.Blur()
	} else {
		a.login.email.Blur()
		a.login.password.Focus()
	}
}

func (a *App) updateLogin(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			a.focusLogin((a.login.focus + 1) % 2)
			return nil
		case "shift+tab", "up":
			a.focusLogin((a.login.focus + 1) % 2)
			return nil
		case "enter":
			if a.login.submitting {
				return nil
			}
			return a.submitLogin()
		case "ctrl+s":
			return a.navigate(RouteSignup)
		case "ctrl+r":
			a.login.reveal = !a.login.reveal
			if a.login.reveal {
				a.login.password.EchoMode = textinput.EchoNormal
			} else {
				a.login.password.EchoMode = textinput.EchoPassword
			}
			return nil
		}
	}

	var cmd tea.Cmd
	if a.login.focus == 0 {
		a.login.email, cmd = a.login.email.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return cmd
}

func (a *App) submitLogin() tea.Cmd {
	email := strings.TrimSpace(a.login.email.Value())
	password := a.login.password.Value()

	a.login.errMsg = ""
	if email == "" || password == "" {
		a.login.errMsg = "Please enter both email and password"
		return nil
	}

	a.login.submitting = true
	b := a.api
	return func() tea.Msg {
		res, err := b.Login(context.Background(), api.Credentials{Email: email, Password: password})
		return loginDoneMsg{res: res, err: err}
	}
}

func (a App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	a.login.submitting = false

	if msg.err == nil {
		user := msg.res.User
		if err := a.sess.Login(&user, msg.res.Token); err != nil {
			a.log.Warn().Err(err).Msg("login: persisting token failed")
		}
		a.login.password.SetValue("")
		toastCmd := a.showToast(toastSuccess, "Logged in successfully!", "Welcome back!")
		navCmd := a.navigate(RouteProducts)
		return a, tea.Batch(toastCmd, navCmd)
	}

	if se, ok := api.AsServerError(msg.err); ok {
		m := se.Message
		if m == "" {
			m = "Login failed"
		}
		a.login.errMsg = m
		cmd := a.showToast(toastError, m, "Invalid credentials or error occurred.")
		return a, cmd
	}

	a.log.Error().Err(msg.err).Msg("login request failed")
	a.login.errMsg = "An error occurred while logging in"
	cmd := a.showToast(toastNetwork, "Network error", "Unable to connect to the server. Please try again later.")
	return a, cmd
}

func (a App) viewLogin() string {
	s := a.login

	button := "Login"
	style := buttonStyle
	if s.submitting {
		button = "Logging In..."
		style = buttonBusyStyle
	}

	lines := []string{
		titleStyle.Render("Let the Journey Begin!"),
		subtitleStyle.Render("Sign in to manage your products and invoices."),
		"",
		slideStyle.Render(carouselSlides[s.slide]),
		"",
		labelStyle.Render("Email Address"),
		s.email.View(),
		captionStyle.Render("This email will be displayed with your inquiry"),
		"",
		labelStyle.Render("Current Password"),
		s.password.View(),
	}
	if s.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(s.errMsg))
	}
	lines = append(lines,
		"",
		style.Render(button),
		"",
		helpStyle.Render("enter submit · tab fields · ctrl+r show/hide password · ctrl+s sign up · ctrl+c quit"),
	)
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
