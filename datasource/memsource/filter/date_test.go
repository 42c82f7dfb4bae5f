package filter_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"time"

	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/datasource/memsource/filter"
)

var _ = Describe("Date filter", func() {
	Context("when filtering a single day", func() {
		predicate := filter.Date{}.Prepare(datasource.DateRange{Date1: "2024-01-15"})

		It("should match any time on that day", func() {
			Expect(predicate("2024-01-15T08:30:00Z", true)).To(BeTrue())
			Expect(predicate(time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC), true)).To(BeTrue())
		})

		It("should not match other days", func() {
			Expect(predicate("2024-01-16", true)).To(BeFalse())
		})

		It("should use the second date when only that one is given", func() {
			second := filter.Date{}.Prepare(datasource.DateRange{Date2: "2024-01-16"})
			Expect(second("2024-01-16", true)).To(BeTrue())
		})
	})

	Context("when filtering a range", func() {
		It("should include both bounds", func() {
			predicate := filter.Date{}.Prepare(datasource.DateRange{Date1: "2024-01-01", Date2: "2024-01-31"})

			Expect(predicate("2024-01-01", true)).To(BeTrue())
			Expect(predicate("2024-01-31 18:00:00", true)).To(BeTrue())
			Expect(predicate("2024-02-01", true)).To(BeFalse())
		})

		It("should swap reversed bounds", func() {
			predicate := filter.Date{}.Prepare(datasource.DateRange{Date1: "2024-01-31", Date2: "2024-01-01"})
			Expect(predicate("2024-01-15", true)).To(BeTrue())
		})
	})

	Context("when filtering odd values", func() {
		predicate := filter.Date{}.Prepare(datasource.DateRange{Date1: "2024-01-15"})

		It("should exclude undefined and unparseable values", func() {
			Expect(predicate(nil, false)).To(BeFalse())
			Expect(predicate("yesterday", true)).To(BeFalse())
			Expect(predicate(time.Time{}, true)).To(BeFalse())
		})

		It("should not restrict on unparseable filter dates", func() {
			Expect(filter.Date{}.Prepare(datasource.DateRange{Date1: "soon"})("2024-01-15", true)).To(BeTrue())
		})
	})

	Context("when parsing days", func() {
		It("should order days chronologically", func() {
			first, _ := filter.ParseDay("2023-12-31")
			second, _ := filter.ParseDay("2024-01-01")

			Expect(first < second).To(BeTrue())
		})
	})
})
