package views

// Paginator keeps a cursor inside a window of visible rows
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes how many rows fit on a page
func (p *Paginator) SetPageSize(pageSize int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	p.pageSize = pageSize
	p.ensureCursorInPage()
}

// SetTotal sets the total number of items, clamping the cursor
func (p *Paginator) SetTotal(total int) {
	p.totalItems = total
	p.SetCursor(p.cursor)
}

// Total returns the number of items
func (p *Paginator) Total() int {
	return p.totalItems
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the items
func (p *Paginator) SetCursor(pos int) {
	pos = min(pos, p.totalItems-1)
	p.cursor = max(pos, 0)
	p.ensureCursorInPage()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.totalItems-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// PageDown moves the cursor one page down
func (p *Paginator) PageDown() {
	p.SetCursor(p.cursor + p.pageSize)
}

// PageUp moves the cursor one page up
func (p *Paginator) PageUp() {
	p.SetCursor(p.cursor - p.pageSize)
}

// VisibleRange returns the start and end indices for the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// ensureCursorInPage scrolls the window just enough to show the cursor
func (p *Paginator) ensureCursorInPage() {
	if p.cursor < p.pageOffset {
		p.pageOffset = p.cursor
	} else if p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = p.cursor - p.pageSize + 1
	}
	p.pageOffset = max(min(p.pageOffset, p.totalItems-p.pageSize), 0)
}
