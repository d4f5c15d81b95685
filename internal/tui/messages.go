package tui

import (
	"time"

	"github.com/levitation-labs/invoicegen/internal/api"
	"github.com/levitation-labs/invoicegen/internal/model"
)

// Route identifies one screen. There is no history stack: navigation
// replaces the current route, so leaving a protected screen cannot be
// undone with "back".
type Route int

const (
	RouteLogin Route = iota
	RouteSignup
	RouteProducts
)

// Messages delivered back to the event loop by async commands. Every network
// call finishes as exactly one of these, so busy flags are cleared on all
// outcomes.
type (
	loginDoneMsg struct {
		res *api.LoginResult
		err error
	}
	signupDoneMsg struct {
		err error
	}
	productsFetchedMsg struct {
		items []model.Product
		err   error
	}
	productAddedMsg struct {
		product model.Product
		err     error
	}
	invoiceDoneMsg struct {
		path string
		err  error
	}

	carouselTickMsg time.Time
	toastExpiredMsg struct{ seq int }
)
