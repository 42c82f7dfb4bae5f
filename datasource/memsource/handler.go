// Package memsource implements the datasource contract on records held in
// memory: global search, per column filters, ordering and pagination.
package memsource

import (
	"fmt"
	"time"

	"gopkg.in/birkirb/loggers.v1/log"

	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/memsource/filter"
	"github.com/tableaux-project/gridquery/datasource/memsource/order"
)

// Connector serves requests from the records of a RecordSource.
type Connector struct {
	source datasource.RecordSource
}

// NewConnector creates a Connector reading from the given source on every
// request, so changes to the source are picked up by the next FetchData.
func NewConnector(source datasource.RecordSource) datasource.Connector {
	return &Connector{source: source}
}

func (th Connector) ValidateRequest(request datasource.Request) error {
	if len(request.Columns) == 0 {
		return fmt.Errorf("no columns selected")
	}

	if err := request.Columns.Validate(); err != nil {
		return err
	}

	for key, value := range request.Filters.Active() {
		column, exists := request.Columns.Lookup(key)
		if !exists {
			return fmt.Errorf("unknown filter column %s", key)
		}

		if value.Type() != column.Type {
			return fmt.Errorf("%s filter on %s column %s", value.Type(), column.Type, key)
		}
	}

	if request.Sort.Sorted() {
		column, exists := request.Columns.Lookup(request.Sort.Key)
		if !exists {
			return fmt.Errorf("unknown order column %s", request.Sort.Key)
		}

		if !column.Sortable {
			return fmt.Errorf("column %s is not sortable", request.Sort.Key)
		}
	}

	if request.Page.Index < 0 {
		return fmt.Errorf("negative page index %d", request.Page.Index)
	}

	return nil
}

func (th Connector) FetchData(request datasource.Request) (*datasource.Result, error) {
	start := time.Now()

	records := th.source.Records()
	ordered := Query(records, request.Columns, request.Filters, request.Sort, request.Search)
	page := datasource.Paginate(ordered, request.Page)

	log.WithFields(
		"time", time.Since(start),
		"totalCount", len(records),
		"filteredCount", len(ordered),
		"count", len(page.Records),
	).Info("Data fetched")

	return &datasource.Result{
		Records:       page.Records,
		TotalCount:    len(records),
		FilteredCount: len(ordered),
		TotalPages:    page.TotalPages,
		PageIndex:     page.Index,
	}, nil
}

// Query searches, filters and orders records. It is a pure function: the
// records and columns are not modified, and the returned slice is new.
func Query(records []datasource.Record, columns datasource.Columns, filters datasource.FilterState,
	sortState datasource.SortState, term string) []datasource.Record {
	predicates := columnPredicates(columns, filters)
	matchesSearch := newSearcher(columns, term)

	result := make([]datasource.Record, 0, len(records))

	for _, record := range records {
		if !matchesSearch(record) {
			continue
		}

		if matchesAll(record, predicates) {
			result = append(result, record)
		}
	}

	if !sortState.Sorted() {
		return result
	}

	column, exists := columns.Lookup(sortState.Key)
	if !exists {
		log.WithField("column", sortState.Key).Debug("Ordering on unknown column - keeping record order")
		return result
	}

	return order.Sort(result, order.ForColumn(column), sortState.Direction)
}

type columnPredicate struct {
	column    datasource.Column
	predicate filter.Predicate
}

func columnPredicates(columns datasource.Columns, filters datasource.FilterState) []columnPredicate {
	active := filters.Active()
	predicates := make([]columnPredicate, 0, len(active))

	// Walk the columns rather than the map, so filters apply in a stable order.
	for _, column := range columns {
		value, filtered := active[column.Key]
		if !filtered {
			continue
		}

		columnFilter, known := filter.ForType(column.Type)
		if !known {
			log.WithFields("column", column.Key, "type", column.Type).Warn("No filter for column type")
			continue
		}

		predicates = append(predicates, columnPredicate{
			column:    column,
			predicate: columnFilter.Prepare(value),
		})
	}

	if len(predicates) < len(active) {
		log.WithFields(
			"filters", len(active),
			"applied", len(predicates),
		).Debug("Ignoring filters on unknown columns")
	}

	return predicates
}

func matchesAll(record datasource.Record, predicates []columnPredicate) bool {
	for _, columnPredicate := range predicates {
		value, defined := datasource.Resolve(record, columnPredicate.column, "")
		if !columnPredicate.predicate(value, defined) {
			return false
		}
	}

	return true
}
