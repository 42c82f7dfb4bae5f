package datasource_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tableaux-project/gridquery"
	"github.com/tableaux-project/gridquery/datasource"
)

var _ = Describe("Filter values", func() {
	Context("when parsing textual filters", func() {
		It("should keep text as is", func() {
			Expect(datasource.ParseFilterValue(gridquery.TypeText, "%manager%")).To(Equal(datasource.TextFilter("%manager%")))
		})

		It("should parse number ranges", func() {
			Expect(datasource.ParseFilterValue(gridquery.TypeNumber, "50000..100000")).
				To(Equal(datasource.NumberRange{Min: "50000", Max: "100000"}))
		})

		It("should leave out missing number bounds", func() {
			Expect(datasource.ParseFilterValue(gridquery.TypeNumber, "50000..")).
				To(Equal(datasource.NumberRange{Min: "50000"}))
			Expect(datasource.ParseFilterValue(gridquery.TypeNumber, "..100000")).
				To(Equal(datasource.NumberRange{Max: "100000"}))
		})

		It("should treat a single number as an exact match", func() {
			Expect(datasource.ParseFilterValue(gridquery.TypeNumber, " 42 ")).
				To(Equal(datasource.NumberRange{Min: "42", Max: "42"}))
		})

		It("should parse dates", func() {
			Expect(datasource.ParseFilterValue(gridquery.TypeDate, "2024-01-31..2024-01-01")).
				To(Equal(datasource.DateRange{Date1: "2024-01-31", Date2: "2024-01-01"}))
			Expect(datasource.ParseFilterValue(gridquery.TypeDate, "2024-01-15")).
				To(Equal(datasource.DateRange{Date1: "2024-01-15"}))
		})

		It("should split categories", func() {
			Expect(datasource.ParseFilterValue(gridquery.TypeCategory, "OPEN, DRAFT,,")).
				To(Equal(datasource.CategorySet{"OPEN", "DRAFT"}))
		})
	})

	Context("when checking for emptiness", func() {
		It("should detect empty values", func() {
			Expect(datasource.TextFilter("  ").Empty()).To(BeTrue())
			Expect(datasource.NumberRange{Min: " "}.Empty()).To(BeTrue())
			Expect(datasource.DateRange{}.Empty()).To(BeTrue())
			Expect(datasource.CategorySet{}.Empty()).To(BeTrue())
		})

		It("should keep zero as a bound", func() {
			Expect(datasource.NumberRange{Min: 0}.Empty()).To(BeFalse())
		})

		It("should only list active filters", func() {
			state := datasource.FilterState{
				"title":  datasource.TextFilter("manager"),
				"salary": datasource.NumberRange{},
				"status": nil,
			}

			active := state.Active()

			Expect(active).To(HaveLen(1))
			Expect(active).To(HaveKey("title"))
			Expect(state).To(HaveLen(3))
		})
	})

	Context("when working with records", func() {
		It("should expose the identity", func() {
			id, exists := datasource.Record{"id": "a-1"}.ID()

			Expect(exists).To(BeTrue())
			Expect(id).To(Equal("a-1"))
		})

		It("should report missing identities", func() {
			_, exists := datasource.Record{"id": nil}.ID()
			Expect(exists).To(BeFalse())
		})
	})

	Context("when working with sort state", func() {
		It("should only be sorted with a key", func() {
			Expect(datasource.SortState{}.Sorted()).To(BeFalse())
			Expect(datasource.SortState{Key: "title"}.Sorted()).To(BeTrue())
		})
	})
})
