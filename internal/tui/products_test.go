package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levitation-labs/invoicegen/internal/api"
	"github.com/levitation-labs/invoicegen/internal/model"
)

func fillProduct(a *App, name, price, quantity string) {
	a.products.name.SetValue(name)
	a.products.price.SetValue(price)
	a.products.quantity.SetValue(quantity)
}

func TestFetchProductsReplacesList(t *testing.T) {
	fake := &fakeBackend{products: []model.Product{
		{ProductName: "A", Price: 10, Quantity: 2},
		{ProductName: "B", Price: 5, Quantity: 1},
	}}
	a := newTestApp(t, fake, RouteProducts, true)
	a.products.items = []model.Product{{ProductName: "stale", Price: 1, Quantity: 1}}

	cmd := (&a).fetchProducts()
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	require.Len(t, a.products.items, 2)
	assert.Equal(t, "A", a.products.items[0].ProductName)
	assert.Equal(t, 1, fake.productCalls)
}

func TestFetchProductsFailureKeepsState(t *testing.T) {
	fake := &fakeBackend{productsErr: &api.ServerError{Status: 500, Message: "boom"}}
	a := newTestApp(t, fake, RouteProducts, true)
	a.products.items = []model.Product{{ProductName: "kept", Price: 1, Quantity: 1}}

	cmd := (&a).fetchProducts()
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	// failure is log-only; existing UI state unchanged
	require.Len(t, a.products.items, 1)
	assert.Equal(t, "kept", a.products.items[0].ProductName)
}

func TestAddProductZeroPriceIsNoop(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteProducts, true)
	fillProduct(&a, "Widget", "0", "2")

	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "zero price never reaches the network")
	assert.Zero(t, fake.addCalls)
}

func TestAddProductZeroQuantityIsNoop(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteProducts, true)
	fillProduct(&a, "Widget", "10", "0")

	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestAddProductEmptyNameIsNoop(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteProducts, true)
	fillProduct(&a, "   ", "10", "2")

	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestAddProductUnparsableNumberIsNoop(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteProducts, true)
	fillProduct(&a, "Widget", "ten", "2")

	_, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestAddProductSuccessAppendsAndResets(t *testing.T) {
	fake := &fakeBackend{}
	a := newTestApp(t, fake, RouteProducts, true)
	fillProduct(&a, "Widget", "10.50", "2")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	require.Len(t, a.products.items, 1)
	assert.Equal(t, model.Product{ProductName: "Widget", Price: 10.5, Quantity: 2}, a.products.items[0])
	assert.Empty(t, a.products.name.Value())
	assert.Empty(t, a.products.price.Value())
	assert.Empty(t, a.products.quantity.Value())
	assert.Equal(t, 1, fake.addCalls)
}

func TestAddProductFailureIsLogOnly(t *testing.T) {
	fake := &fakeBackend{addErr: errors.New("dial tcp: connection refused")}
	a := newTestApp(t, fake, RouteProducts, true)
	fillProduct(&a, "Widget", "10", "2")

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	assert.Empty(t, a.products.items, "failed add is not appended")
	assert.Equal(t, "Widget", a.products.name.Value(), "inputs kept for retry")
}

func TestGenerateInvoiceDownloads(t *testing.T) {
	fake := &fakeBackend{invoiceURL: "http://files.example/i.pdf"}
	a := newTestApp(t, fake, RouteProducts, true)

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)
	assert.True(t, a.products.generating)

	a, _ = step(t, a, cmd())

	assert.False(t, a.products.generating)
	require.Len(t, fake.downloads, 1)
	assert.Equal(t, "http://files.example/i.pdf", fake.downloads[0])
	require.NotNil(t, a.toast)
	assert.Equal(t, "Invoice downloaded", a.toast.title)
	assert.Contains(t, a.toast.desc, "Invoice_")
	assert.Contains(t, a.toast.desc, ".pdf")
}

func TestGenerateInvoiceServerErrorClearsBusyFlag(t *testing.T) {
	fake := &fakeBackend{invoiceErr: &api.ServerError{Status: 500, Message: "renderer down"}}
	a := newTestApp(t, fake, RouteProducts, true)

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	assert.False(t, a.products.generating)
	assert.Nil(t, a.toast, "invoice failures are log-only")
}

func TestGenerateInvoiceMissingURLIsLogOnly(t *testing.T) {
	fake := &fakeBackend{invoiceURL: ""}
	a := newTestApp(t, fake, RouteProducts, true)

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)
	a, _ = step(t, a, cmd())

	assert.False(t, a.products.generating)
	assert.Empty(t, fake.downloads)
	assert.Nil(t, a.toast)
}

func TestGenerateInvoiceIgnoredWhileBusy(t *testing.T) {
	fake := &fakeBackend{invoiceURL: "http://files.example/i.pdf"}
	a := newTestApp(t, fake, RouteProducts, true)

	a, cmd := step(t, a, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)

	_, second := step(t, a, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Nil(t, second)
}

func TestInvoiceFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "Invoice_2026-08-31T10:30:00.000Z.pdf", invoiceFileName(now))
}

func TestTotalsRendering(t *testing.T) {
	a := newTestApp(t, &fakeBackend{}, RouteProducts, true)
	a.products.items = []model.Product{
		{ProductName: "A", Price: 10, Quantity: 2},
		{ProductName: "B", Price: 5, Quantity: 1},
	}
	(&a).rebuildProductTable()

	view := a.viewProducts()
	assert.Contains(t, view, "INR 25.00")
	assert.Contains(t, view, "INR 29.50")
}
