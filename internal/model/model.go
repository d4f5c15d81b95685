// Package model holds the domain records shared across the client.
package model

// User is the account identity returned by the backend on login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Product is a single invoice line item.
// Kept minimal on purpose; it’s easy to evolve.
type Product struct {
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// LineTotal is price times quantity for one row.
func (p Product) LineTotal() float64 {
	return p.Price * float64(p.Quantity)
}

// Subtotal sums the line totals across all items.
func Subtotal(items []Product) float64 {
	var sum float64
	for _, p := range items {
		sum += p.LineTotal()
	}
	return sum
}

// GSTRate is the surcharge applied on top of the subtotal.
const GSTRate = 0.18

// TotalInclGST is the subtotal plus 18% GST.
func TotalInclGST(items []Product) float64 {
	sub := Subtotal(items)
	return sub + sub*GSTRate
}
