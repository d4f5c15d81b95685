package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/levitation-labs/invoicegen/internal/api"
	"github.com/levitation-labs/invoicegen/internal/validate"
)

type signupState struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	focus    int

	submitting bool
	errMsg     string
}

func newSignupState() signupState {
	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Enter your name"
	name.CharLimit = 128
	name.Width = 40

	email := textinput.New()
	email.Prompt = "> "
	email.Placeholder = "Enter Email ID"
	email.CharLimit = 128
	email.Width = 40

	password := textinput.New()
	password.Prompt = "> "
	password.Placeholder = "Enter the Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	return signupState{name: name, email: email, password: password}
}

func (a *App) focusSignup(i int) {
	a.signup.focus = i
	inputs := []*textinput.Model{&a.signup.name, &a.signup.email, &a.signup.password}
	for n, in := range inputs {
		if n == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (a *App) updateSignup(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			a.focusSignup((a.signup.focus + 1) % 3)
			return nil
		case "shift+tab", "up":
			a.focusSignup((a.signup.focus + 2) % 3)
			return nil
		case "enter":
			if a.signup.submitting {
				return nil
			}
			return a.submitSignup()
		case "esc":
			return a.navigate(RouteLogin)
		}
	}

	var cmd tea.Cmd
	switch a.signup.focus {
	case 0:
		a.signup.name, cmd = a.signup.name.Update(msg)
	case 1:
		a.signup.email, cmd = a.signup.email.Update(msg)
	default:
		a.signup.password, cmd = a.signup.password.Update(msg)
	}
	return cmd
}

func (a *App) submitSignup() tea.Cmd {
	name := strings.TrimSpace(a.signup.name.Value())
	email := strings.TrimSpace(a.signup.email.Value())
	password := a.signup.password.Value()

	a.signup.errMsg = ""
	if err := validate.ValidateForm(validate.KindSignup, name, email, password); err != nil {
		a.signup.errMsg = err.Error()
		return nil
	}

	a.signup.submitting = true
	b := a.api
	return func() tea.Msg {
		err := b.Register(context.Background(), api.SignupInput{Name: name, Email: email, Password: password})
		return signupDoneMsg{err: err}
	}
}

func (a App) handleSignupDone(msg signupDoneMsg) (tea.Model, tea.Cmd) {
	a.signup.submitting = false

	if msg.err == nil {
		a.signup.password.SetValue("")
		toastCmd := a.showToast(toastSuccess, "User registered successfully", "Welcome! You have successfully registered.")
		navCmd := a.navigate(RouteLogin)
		return a, tea.Batch(toastCmd, navCmd)
	}

	if se, ok := api.AsServerError(msg.err); ok {
		m := se.Message
		if m == "" {
			m = "Something went wrong"
		}
		a.signup.errMsg = m
		var cmd tea.Cmd
		if strings.TrimSpace(se.Message) == "User already exists" {
			cmd = a.showToast(toastError, "Account Already Exists",
				"Please try login or use a different email. Press ctrl+l to sign in.")
		} else {
			desc := se.Message
			if desc == "" {
				desc = "An unexpected error occurred."
			}
			cmd = a.showToast(toastError, "Registration Failed", desc)
		}
		return a, cmd
	}

	a.log.Error().Err(msg.err).Msg("register request failed")
	a.signup.errMsg = "An error occurred while submitting the form"
	cmd := a.showToast(toastNetwork, "Network Error", "Unable to connect to the server. Please try again later.")
	return a, cmd
}

func (a App) viewSignup() string {
	s := a.signup

	button := "Register"
	style := buttonStyle
	if s.submitting {
		button = "Registering..."
		style = buttonBusyStyle
	}

	lines := []string{
		titleStyle.Render("Sign up to begin journey"),
		subtitleStyle.Render("Create an account to start generating invoices."),
		"",
		labelStyle.Render("Enter your name"),
		s.name.View(),
		captionStyle.Render("This name will be displayed with your inquiry"),
		"",
		labelStyle.Render("Email Address"),
		s.email.View(),
		captionStyle.Render("This email will be displayed with your inquiry"),
		"",
		labelStyle.Render("Password"),
		s.password.View(),
		captionStyle.Render("Any further updates will be forwarded on this Email ID"),
	}
	if s.errMsg != "" {
		lines = append(lines, "", errorStyle.Render(s.errMsg))
	}
	lines = append(lines,
		"",
		style.Render(button)+"  "+mutedStyle.Render("Already have an account? esc"),
		"",
		helpStyle.Render("enter submit · tab fields · esc back to login · ctrl+c quit"),
	)
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
