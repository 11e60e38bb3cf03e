package cart

import "github.com/MOON-roa-png/BodegaMati/models"

// Line is one prospective sale line. Name and unit price are snapshots
// taken when the line was added; later catalog edits do not touch them.
type Line struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   int64           `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    int64           `json:"subtotal"`
	Kind        models.SaleKind `json:"kind"`
}

// Cart accumulates lines for one session. It never touches persisted
// stock; stock is only checked for real at confirmation time.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add appends a line, or merges it into the existing line for the same
// product. On merge the quantities are summed and the subtotal recomputed
// from the line's existing snapshot unit price.
func (c *Cart) Add(l Line) error {
	if l.Quantity <= 0 {
		return &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"}
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == l.ProductID {
			c.Lines[i].Quantity += l.Quantity
			c.Lines[i].Subtotal = c.Lines[i].UnitPrice * int64(c.Lines[i].Quantity)
			return nil
		}
	}
	l.Subtotal = l.UnitPrice * int64(l.Quantity)
	c.Lines = append(c.Lines, l)
	return nil
}

func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.Lines) {
		return &models.ValidationError{Field: "index", Msg: "out of range"}
	}
	if quantity <= 0 {
		return &models.ValidationError{Field: "quantity", Msg: "must be greater than zero"}
	}
	c.Lines[index].Quantity = quantity
	c.Lines[index].Subtotal = c.Lines[index].UnitPrice * int64(quantity)
	return nil
}

// Remove drops the line at index; later lines shift down one position.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return &models.ValidationError{Field: "index", Msg: "out of range"}
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal
	}
	return total
}
