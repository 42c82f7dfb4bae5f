package memsource_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"strings"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/memsource"
)

var _ = Describe("Search", func() {
	var (
		columns datasource.Columns
		records []datasource.Record
	)

	BeforeEach(func() {
		columns = jobColumns()
		records = jobRecords()
	})

	It("should match everything without a term", func() {
		for _, record := range records {
			Expect(memsource.SearchMatches(record, columns, "")).To(BeTrue())
		}
	})

	It("should match everything without searchable columns", func() {
		unsearchable := datasource.Columns{{Key: "salary", Type: gridquery.TypeNumber}}
		Expect(memsource.SearchMatches(records[0], unsearchable, "nothing like it")).To(BeTrue())
	})

	It("should match searchable columns case insensitively", func() {
		Expect(memsource.SearchMatches(records[1], columns, "DEVELOPER")).To(BeTrue())
		Expect(memsource.SearchMatches(records[0], columns, "developer")).To(BeFalse())
	})

	It("should not look at columns which are not searchable", func() {
		Expect(memsource.SearchMatches(records[0], columns, "120000")).To(BeFalse())
	})

	It("should search all search paths", func() {
		Expect(memsource.SearchMatches(records[0], columns, "berlin")).To(BeTrue())
		Expect(memsource.SearchMatches(records[0], columns, "acme berlin")).To(BeTrue())
	})

	It("should skip missing search paths", func() {
		Expect(memsource.SearchMatches(records[2], columns, "globex")).To(BeTrue())
		Expect(memsource.SearchMatches(records[3], columns, "acme")).To(BeFalse())
	})

	It("should apply search functions to the column value", func() {
		custom := datasource.Columns{{
			Key:        "status",
			Type:       gridquery.TypeCategory,
			Searchable: true,
			Search: datasource.SearchFunc(func(value interface{}) string {
				return "status " + strings.ToLower(value.(string))
			}),
		}}

		Expect(memsource.SearchMatches(records[0], custom, "status open")).To(BeTrue())
		Expect(memsource.SearchMatches(records[2], custom, "status open")).To(BeFalse())
	})

	It("should pass undefined values to search functions as nil", func() {
		custom := datasource.Columns{{
			Key:        "recruiter",
			Type:       gridquery.TypeText,
			Searchable: true,
			Search: datasource.SearchFunc(func(value interface{}) string {
				if value == nil {
					return "unassigned"
				}
				return value.(string)
			}),
		}}

		Expect(memsource.SearchMatches(records[0], custom, "unassigned")).To(BeTrue())
		Expect(memsource.Query(records, custom, nil, datasource.SortState{}, "unassigned")).To(HaveLen(4))
	})

	It("should not match when a search function panics", func() {
		custom := datasource.Columns{{
			Key:        "recruiter",
			Type:       gridquery.TypeText,
			Searchable: true,
			Search: datasource.SearchFunc(func(value interface{}) string {
				return value.(string)
			}),
		}, {Key: "title", Type: gridquery.TypeText, Searchable: true}}

		Expect(memsource.SearchMatches(records[0], custom, "manager")).To(BeTrue())
		Expect(memsource.SearchMatches(records[0], custom, "unassigned")).To(BeFalse())
	})
})
