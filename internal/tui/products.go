package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/levitation-labs/invoicegen/internal/api"
	"github.com/levitation-labs/invoicegen/internal/model"
)

type productsState struct {
	items []model.Product

	name     textinput.Model
	price    textinput.Model
	quantity textinput.Model
	focus    int

	tbl        table.Model
	generating bool
}

func newProductsState() productsState {
	name := textinput.New()
	name.Prompt = "> "
	name.Placeholder = "Enter the product name"
	name.CharLimit = 128
	name.Width = 28

	price := textinput.New()
	price.Prompt = "> "
	price.Placeholder = "Enter the price"
	price.CharLimit = 16
	price.Width = 16

	quantity := textinput.New()
	quantity.Prompt = "> "
	quantity.Placeholder = "Enter the Qty"
	quantity.CharLimit = 8
	quantity.Width = 12

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "Product name", Width: 24},
			{Title: "Price", Width: 12},
			{Title: "Quantity", Width: 10},
			{Title: "Total Price", Width: 16},
		}),
		table.WithHeight(8),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true)
	tbl.SetStyles(styles)

	return productsState{name: name, price: price, quantity: quantity, tbl: tbl}
}

func (a *App) focusProducts(i int) {
	a.products.focus = i
	inputs := []*textinput.Model{&a.products.name, &a.products.price, &a.products.quantity}
	for n, in := range inputs {
		if n == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	if i == 3 {
		a.products.tbl.Focus()
	} else {
		a.products.tbl.Blur()
	}
}

func (a *App) rebuildProductTable() {
	rows := make([]table.Row, 0, len(a.products.items))
	for _, p := range a.products.items {
		rows = append(rows, table.Row{
			p.ProductName,
			fmt.Sprintf("%.2f", p.Price),
			strconv.Itoa(p.Quantity),
			fmt.Sprintf("INR %.2f", p.LineTotal()),
		})
	}
	a.products.tbl.SetRows(rows)
}

func (a *App) updateProducts(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			a.focusProducts((a.products.focus + 1) % 4)
			return nil
		case "shift+tab", "up":
			a.focusProducts((a.products.focus + 3) % 4)
			return nil
		case "enter":
			return a.submitProduct()
		case "ctrl+g":
			return a.generateInvoice()
		}
	}

	var cmd tea.Cmd
	switch a.products.focus {
	case 0:
		a.products.name, cmd = a.products.name.Update(msg)
	case 1:
		a.products.price, cmd = a.products.price.Update(msg)
	case 2:
		a.products.quantity, cmd = a.products.quantity.Update(msg)
	default:
		a.products.tbl, cmd = a.products.tbl.Update(msg)
	}
	return cmd
}

// fetchProducts loads the list on entering the screen. Without a token
// nothing happens beyond a log line; under the route guard that branch is
// normally unreachable.
func (a *App) fetchProducts() tea.Cmd {
	token := a.sess.Token()
	if token == "" {
		a.log.Warn().Msg("no authentication token found, skipping product fetch")
		return nil
	}
	b := a.api
	return func() tea.Msg {
		items, err := b.Products(context.Background(), token)
		return productsFetchedMsg{items: items, err: err}
	}
}

func (a App) handleProductsFetched(msg productsFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// console-only in the web client; same here, just structured
		a.log.Error().Err(msg.err).Msg("fetching products failed")
		return a, nil
	}
	a.products.items = msg.items
	a.rebuildProductTable()
	return a, nil
}

// submitProduct posts the new line item. All three fields must be present
// and non-zero; otherwise the action is a silent no-op, like the web form.
func (a *App) submitProduct() tea.Cmd {
	name := strings.TrimSpace(a.products.name.Value())
	price, perr := strconv.ParseFloat(strings.TrimSpace(a.products.price.Value()), 64)
	quantity, qerr := strconv.Atoi(strings.TrimSpace(a.products.quantity.Value()))

	if name == "" || perr != nil || qerr != nil || price == 0 || quantity == 0 {
		return nil
	}

	token := a.sess.Token()
	if token == "" {
		a.log.Warn().Msg("no authentication token found, skipping product add")
		return nil
	}

	p := model.Product{ProductName: name, Price: price, Quantity: quantity}
	b := a.api
	return func() tea.Msg {
		err := b.AddProduct(context.Background(), token, p)
		return productAddedMsg{product: p, err: err}
	}
}

func (a App) handleProductAdded(msg productAddedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.log.Error().Err(msg.err).Msg("adding product failed")
		return a, nil
	}
	a.products.items = append(a.products.items, msg.product)
	a.products.name.SetValue("")
	a.products.price.SetValue("")
	a.products.quantity.SetValue("")
	a.rebuildProductTable()
	return a, nil
}

// generateInvoice asks the backend for a rendered invoice, then downloads it
// as Invoice_<timestamp>.pdf into the working directory.
func (a *App) generateInvoice() tea.Cmd {
	if a.products.generating {
		return nil
	}
	token := a.sess.Token()
	if token == "" {
		a.log.Warn().Msg("no authentication token found, skipping invoice generation")
		return nil
	}

	a.products.generating = true
	b := a.api
	return func() tea.Msg {
		url, err := b.GenerateInvoice(context.Background(), token)
		if err != nil {
			return invoiceDoneMsg{err: err}
		}
		if url == "" {
			return invoiceDoneMsg{err: errNoDownloadURL}
		}
		dest := invoiceFileName(time.Now())
		if err := b.Download(context.Background(), url, dest); err != nil {
			return invoiceDoneMsg{err: err}
		}
		return invoiceDoneMsg{path: dest}
	}
}

var errNoDownloadURL = fmt.Errorf("no download URL provided by the server")

func invoiceFileName(now time.Time) string {
	return fmt.Sprintf("Invoice_%s.pdf", now.UTC().Format("2006-01-02T15:04:05.000Z"))
}

func (a App) handleInvoiceDone(msg invoiceDoneMsg) (tea.Model, tea.Cmd) {
	a.products.generating = false
	if msg.err != nil {
		if se, ok := api.AsServerError(msg.err); ok {
			m := se.Message
			if m == "" {
				m = "Unknown error"
			}
			a.log.Error().Int("status", se.Status).Str("message", m).Msg("generating invoice failed")
		} else {
			a.log.Error().Err(msg.err).Msg("invoice generation request failed")
		}
		return a, nil
	}
	cmd := a.showToast(toastSuccess, "Invoice downloaded", "Saved as "+msg.path)
	return a, cmd
}

func (a App) viewProducts() string {
	s := a.products

	button := "Generate PDF Invoice"
	style := buttonStyle
	if s.generating {
		button = "Generating..."
		style = buttonBusyStyle
	}

	inputs := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render("Product Name"), s.name.View()),
		"   ",
		lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render("Product Price"), s.price.View()),
		"   ",
		lipgloss.JoinVertical(lipgloss.Left, labelStyle.Render("Quantity"), s.quantity.View()),
	)

	totals := lipgloss.JoinVertical(lipgloss.Right,
		accentStyle.Render(fmt.Sprintf("Sub-Total       INR %.2f", model.Subtotal(s.items))),
		accentStyle.Render(fmt.Sprintf("Incl + GST 18%%  INR %.2f", model.TotalInclGST(s.items))),
	)

	lines := []string{
		titleStyle.Render("Add Products"),
		subtitleStyle.Render("Build your invoice line by line."),
		"",
		inputs,
		"",
		buttonStyle.Render("Add Product") + "  " + mutedStyle.Render("enter"),
		"",
		s.tbl.View(),
		"",
		totals,
		"",
		style.Render(button) + "  " + mutedStyle.Render("ctrl+g"),
		"",
		helpStyle.Render("enter add product · tab fields/table · ctrl+g generate invoice · ctrl+l logout · ctrl+c quit"),
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
