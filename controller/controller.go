// Package controller owns the state of a single table view: the local record
// collection, filters, ordering, search term and page. Every read of the
// view recomputes it from that state through the query engine.
package controller

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/memsource"
)

// ErrUnknownRecord indicates that no record with the requested id exists.
var ErrUnknownRecord = errors.New("unknown record")

// State is the complete user controlled state of a table view.
type State struct {
	Filters datasource.FilterState
	Sort    datasource.SortState
	Search  string
	Page    datasource.PageState
}

// Controller is the sole writer of a table view's state. It is not safe for
// concurrent use.
type Controller struct {
	columns   datasource.Columns
	records   []datasource.Record
	state     State
	connector datasource.Connector
}

// New creates a controller over the given columns and records.
func New(columns datasource.Columns, records []datasource.Record, pageSize int) *Controller {
	c := &Controller{
		columns: columns,
		records: append([]datasource.Record(nil), records...),
		state: State{
			Filters: datasource.FilterState{},
			Page:    datasource.PageState{Size: pageSize},
		},
	}
	c.connector = memsource.NewConnector(c)

	return c
}

// Records returns the local record collection.
func (c *Controller) Records() []datasource.Record {
	return c.records
}

// Columns returns the columns of the view.
func (c *Controller) Columns() datasource.Columns {
	return c.columns
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	state := c.state
	state.Filters = make(datasource.FilterState, len(c.state.Filters))
	for key, value := range c.state.Filters {
		state.Filters[key] = value
	}

	return state
}

// SetRecords replaces the record collection and returns to the first page.
func (c *Controller) SetRecords(records []datasource.Record) {
	c.records = append([]datasource.Record(nil), records...)
	c.state.Page.Index = 0
}

// SetSearch changes the global search term. A changed term returns to the
// first page.
func (c *Controller) SetSearch(term string) {
	if term == c.state.Search {
		return
	}

	c.state.Search = term
	c.state.Page.Index = 0
}

// SetFilter sets, or with an empty value clears, the filter of a column.
func (c *Controller) SetFilter(key string, value datasource.FilterValue) {
	if value == nil || value.Empty() {
		delete(c.state.Filters, key)
		return
	}

	c.state.Filters[key] = value
}

// ClearFilters removes all column filters.
func (c *Controller) ClearFilters() {
	c.state.Filters = datasource.FilterState{}
}

// SetSort orders by a column. An empty key restores the record order.
func (c *Controller) SetSort(key string, direction gridquery.Order) {
	c.state.Sort = datasource.SortState{Key: key, Direction: direction}
}

// ToggleSort orders ascending by a new column, or reverses the direction
// when the column is already the sort column.
func (c *Controller) ToggleSort(key string) {
	if c.state.Sort.Key == key {
		c.state.Sort.Direction = c.state.Sort.Direction.Reverse()
		return
	}

	c.SetSort(key, gridquery.OrderAsc)
}

// SetPage requests a page. Out of range indexes are clamped on the next View.
func (c *Controller) SetPage(index int) {
	c.state.Page.Index = index
}

// SetPageSize changes the page size, keeping the page index.
func (c *Controller) SetPageSize(size int) {
	c.state.Page.Size = size
}

// View recomputes the visible page and stores the clamped page index.
func (c *Controller) View() *datasource.Result {
	result, err := c.connector.FetchData(datasource.Request{
		Columns: c.columns,
		Filters: c.state.Filters,
		Sort:    c.state.Sort,
		Search:  c.state.Search,
		Page:    c.state.Page,
	})
	if err != nil {
		// The in memory connector does not fail; keep the view usable regardless.
		log.WithField("error", err).Error("Failed to compute view")
		return &datasource.Result{TotalPages: 1}
	}

	c.state.Page.Index = result.PageIndex

	return result
}

// Add appends a record to the collection. A record without id is given a
// random one. The stored copy is returned.
func (c *Controller) Add(record datasource.Record) datasource.Record {
	stored := copyRecord(record)
	if _, hasID := stored.ID(); !hasID {
		stored["id"] = uuid.NewString()
	}

	c.records = append(c.records, stored)
	c.state.Page.Index = 0

	return stored
}

// Update replaces the record sharing the id of the given record.
func (c *Controller) Update(record datasource.Record) error {
	id, hasID := record.ID()
	if !hasID {
		return ErrUnknownRecord
	}

	index := c.indexOf(id)
	if index < 0 {
		return ErrUnknownRecord
	}

	records := append([]datasource.Record(nil), c.records...)
	records[index] = copyRecord(record)
	c.records = records
	c.state.Page.Index = 0

	return nil
}

// Remove deletes the record with the given id.
func (c *Controller) Remove(id interface{}) error {
	index := c.indexOf(id)
	if index < 0 {
		return ErrUnknownRecord
	}

	records := make([]datasource.Record, 0, len(c.records)-1)
	records = append(records, c.records[:index]...)
	c.records = append(records, c.records[index+1:]...)
	c.state.Page.Index = 0

	return nil
}

func (c *Controller) indexOf(id interface{}) int {
	wanted := datasource.FormatValue(id)

	for i, record := range c.records {
		if recordID, hasID := record.ID(); hasID && datasource.FormatValue(recordID) == wanted {
			return i
		}
	}

	return -1
}

func copyRecord(record datasource.Record) datasource.Record {
	copied := make(datasource.Record, len(record)+1)
	for key, value := range record {
		copied[key] = value
	}

	return copied
}
