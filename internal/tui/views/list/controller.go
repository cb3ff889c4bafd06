package list

import (
	"strings"

	"github.com/colonyops/acknowlist/internal/core/ack"
)

// Controller manages cursor, scrolling and filtering over the presenter rows.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	presenter *ack.Presenter
	rows      []int // presenter rows matching the filter
	cursor    int
	offset    int
	filtering bool
	filter    string
	filterBuf strings.Builder
}

// NewController creates a controller showing every presenter row.
func NewController(p *ack.Presenter) *Controller {
	c := &Controller{presenter: p}
	c.applyFilter()
	return c
}

// StartFilter begins filter input mode.
func (c *Controller) StartFilter() {
	c.filtering = true
	c.filterBuf.Reset()
	c.filterBuf.WriteString(c.filter)
}

// CancelFilter cancels filtering and clears the filter.
func (c *Controller) CancelFilter() {
	c.filtering = false
	c.filter = ""
	c.filterBuf.Reset()
	c.applyFilter()
}

// ConfirmFilter keeps the filter text and exits filter mode.
func (c *Controller) ConfirmFilter() {
	c.filtering = false
}

// IsFiltering returns true if filter input is active.
func (c *Controller) IsFiltering() bool {
	return c.filtering
}

// AddFilterRune adds a rune to the filter.
func (c *Controller) AddFilterRune(r rune) {
	c.filterBuf.WriteRune(r)
	c.filter = c.filterBuf.String()
	c.applyFilter()
}

// DeleteFilterRune removes the last rune from the filter.
func (c *Controller) DeleteFilterRune() {
	runes := []rune(c.filterBuf.String())
	if len(runes) == 0 {
		return
	}
	runes = runes[:len(runes)-1]
	c.filterBuf.Reset()
	c.filterBuf.WriteString(string(runes))
	c.filter = string(runes)
	c.applyFilter()
}

// Filter returns the current filter text.
func (c *Controller) Filter() string {
	return c.filter
}

// MoveUp moves the cursor up one position.
func (c *Controller) MoveUp(visible int) {
	if c.cursor > 0 {
		c.cursor--
		c.clampOffset(visible)
	}
}

// MoveDown moves the cursor down one position.
func (c *Controller) MoveDown(visible int) {
	if c.cursor < len(c.rows)-1 {
		c.cursor++
		c.clampOffset(visible)
	}
}

// Top moves the cursor to the first row.
func (c *Controller) Top(visible int) {
	c.cursor = 0
	c.clampOffset(visible)
}

// Bottom moves the cursor to the last row.
func (c *Controller) Bottom(visible int) {
	c.cursor = max(len(c.rows)-1, 0)
	c.clampOffset(visible)
}

// Selected returns the presenter row under the cursor.
func (c *Controller) Selected() (int, bool) {
	if c.cursor >= len(c.rows) {
		return 0, false
	}
	return c.rows[c.cursor], true
}

// Rows returns the presenter rows matching the filter, in display order.
func (c *Controller) Rows() []int {
	return c.rows
}

// Cursor returns the current cursor position within Rows.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() int {
	return c.offset
}

// Len returns the total number of presenter rows.
func (c *Controller) Len() int {
	return c.presenter.RowCount()
}

// SetSize clamps the offset after a size change.
func (c *Controller) SetSize(visible int) {
	c.clampOffset(visible)
}

func (c *Controller) applyFilter() {
	c.rows = c.presenter.Filter(c.filter)
	if c.cursor >= len(c.rows) {
		c.cursor = 0
		c.offset = 0
	}
}

func (c *Controller) clampOffset(visible int) {
	visible = max(visible, 1)
	total := len(c.rows)

	if c.cursor < c.offset {
		c.offset = c.cursor
	} else if c.cursor >= c.offset+visible {
		c.offset = c.cursor - visible + 1
	}

	maxOffset := max(total-visible, 0)
	c.offset = min(max(c.offset, 0), maxOffset)
}
