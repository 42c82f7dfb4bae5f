package datasource

import "github.com/tableaux-project/gridquery"

// PageState selects a single page. A non positive Size means
// gridquery.DefaultPageSize.
type PageState struct {
	Index int
	Size  int
}

// EffectiveSize returns the page size actually used.
func (p PageState) EffectiveSize() int {
	if p.Size <= 0 {
		return gridquery.DefaultPageSize
	}

	return p.Size
}

// TotalPages returns the number of pages for a record count. There is
// always at least one, possibly empty, page.
func (p PageState) TotalPages(count int) int {
	size := p.EffectiveSize()

	pages := (count + size - 1) / size
	if pages < 1 {
		return 1
	}

	return pages
}

// Clamp moves the index into the valid range for a record count.
func (p PageState) Clamp(count int) PageState {
	clamped := p

	if last := p.TotalPages(count) - 1; clamped.Index > last {
		clamped.Index = last
	}

	if clamped.Index < 0 {
		clamped.Index = 0
	}

	return clamped
}

// Page is a single visible slice of ordered records.
type Page struct {
	Records    []Record
	Index      int
	TotalPages int
}

// Paginate slices the ordered records into the requested page, clamping an
// out of range index instead of failing.
func Paginate(records []Record, state PageState) Page {
	clamped := state.Clamp(len(records))
	size := clamped.EffectiveSize()

	start := clamped.Index * size
	end := start + size

	if end > len(records) {
		end = len(records)
	}

	page := make([]Record, end-start)
	copy(page, records[start:end])

	return Page{
		Records:    page,
		Index:      clamped.Index,
		TotalPages: clamped.TotalPages(len(records)),
	}
}
