// Package tui implements the terminal UI: a root model owning the current
// route, the session, the header bar and toasts, plus the login, signup and
// products screens. All network work runs as commands; their completion
// messages are the only way screen state changes after a submit.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/levitation-labs/invoicegen/internal/api"
	"github.com/levitation-labs/invoicegen/internal/model"
	"github.com/levitation-labs/invoicegen/internal/session"
)

// backend is the slice of the API client the screens use. *api.Client
// satisfies it; tests substitute a fake.
type backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, error)
	Register(ctx context.Context, in api.SignupInput) error
	Products(ctx context.Context, token string) ([]model.Product, error)
	AddProduct(ctx context.Context, token string, p model.Product) error
	GenerateInvoice(ctx context.Context, token string) (string, error)
	Download(ctx context.Context, url, dest string) error
}

// App is the root Bubble Tea model.
type App struct {
	api  backend
	sess *session.Store
	log  zerolog.Logger

	route  Route
	width  int
	height int

	login    loginState
	signup   signupState
	products productsState

	toast    *toast
	toastSeq int
}

// New builds the app at the requested initial route. The route guard runs
// immediately, so asking for the protected screen without a session lands
// on login.
func New(b backend, sess *session.Store, log zerolog.Logger, initial Route) App {
	a := App{
		api:      b,
		sess:     sess,
		log:      log,
		login:    newLoginState(),
		signup:   newSignupState(),
		products: newProductsState(),
	}
	a.route = a.guard(initial)
	switch a.route {
	case RouteLogin:
		a.focusLogin(0)
	case RouteSignup:
		a.focusSignup(0)
	case RouteProducts:
		a.focusProducts(0)
	}
	return a
}

// guard replaces a protected target with the login route when no session
// exists. Pure function of session state at navigation time.
func (a *App) guard(r Route) Route {
	if r == RouteProducts && !a.sess.Authenticated() {
		return RouteLogin
	}
	return r
}

// navigate switches routes (through the guard) and returns the entry
// command for the new screen.
func (a *App) navigate(r Route) tea.Cmd {
	a.route = a.guard(r)
	switch a.route {
	case RouteLogin:
		a.focusLogin(0)
		return carouselTick()
	case RouteSignup:
		a.focusSignup(0)
		return nil
	case RouteProducts:
		a.focusProducts(0)
		return a.fetchProducts()
	}
	return nil
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	switch a.route {
	case RouteLogin:
		cmds = append(cmds, carouselTick())
	case RouteProducts:
		cmds = append(cmds, (&a).fetchProducts())
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+l":
			// header action: logout when authenticated, else go to login
			if a.sess.Authenticated() {
				if err := a.sess.Logout(); err != nil {
					a.log.Warn().Err(err).Msg("logout: removing stored token failed")
				}
			}
			cmd := a.navigate(RouteLogin)
			return a, cmd
		}

	case toastExpiredMsg:
		if msg.seq == a.toastSeq {
			a.toast = nil
		}
		return a, nil

	case carouselTickMsg:
		// cosmetic; the timer dies as soon as the login route is left
		if a.route != RouteLogin {
			return a, nil
		}
		a.login.slide = (a.login.slide + 1) % len(carouselSlides)
		return a, carouselTick()

	case loginDoneMsg:
		return a.handleLoginDone(msg)
	case signupDoneMsg:
		return a.handleSignupDone(msg)
	case productsFetchedMsg:
		return a.handleProductsFetched(msg)
	case productAddedMsg:
		return a.handleProductAdded(msg)
	case invoiceDoneMsg:
		return a.handleInvoiceDone(msg)
	}

	var cmd tea.Cmd
	switch a.route {
	case RouteLogin:
		cmd = a.updateLogin(msg)
	case RouteSignup:
		cmd = a.updateSignup(msg)
	case RouteProducts:
		cmd = a.updateProducts(msg)
	}
	return a, cmd
}

func (a App) View() string {
	var body string
	switch a.route {
	case RouteLogin:
		body = a.viewLogin()
	case RouteSignup:
		body = a.viewSignup()
	case RouteProducts:
		body = a.viewProducts()
	}

	sections := []string{a.viewHeader(), body}
	if t := a.viewToast(); t != "" {
		sections = append(sections, t)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// viewHeader renders the top bar: app name on the left, the Login/Logout
// action on the right. The action follows the same boolean of record the
// route guard uses.
func (a App) viewHeader() string {
	left := "invoicegen"
	right := "Login (ctrl+l)"
	if a.sess.Authenticated() {
		right = "Logout (ctrl+l)"
		if u := a.sess.User(); u != nil && u.Name != "" {
			right = u.Name + " · " + right
		}
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 8
	if gap < 2 {
		gap = 2
	}
	return headerStyle.Render(left + strings.Repeat(" ", gap) + right)
}
