package loader_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"path/filepath"

	"github.com/tableaux-project/gridquery/config"
	"github.com/tableaux-project/gridquery/datasource"
	"github.com/tableaux-project/gridquery/internal/cli/loader"
)

var configTestFiles = filepath.Join("..", "..", "..", "config", "testfiles")

var _ = Describe("Loader", func() {
	Context("when reading records from a file", func() {
		It("should read all records", func() {
			records, err := loader.RecordsFromFile(filepath.Join("testfiles", "jobs.json"))

			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			Expect(records[0]["title"]).To(Equal("Senior Manager"))
			Expect(records[1]["salary"]).To(BeNumerically("==", 75000.5))

			name, defined := datasource.ResolvePath(records[0], "company.name")
			Expect(defined).To(BeTrue())
			Expect(name).To(Equal("Acme"))
		})

		It("should error on broken files", func() {
			_, err := loader.RecordsFromFile(filepath.Join("testfiles", "broken.json"))
			Expect(err).To(HaveOccurred())
		})

		It("should error on missing files", func() {
			_, err := loader.RecordsFromFile(filepath.Join("testfiles", "wat.json"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when loading the catalog", func() {
		var (
			settings config.Settings
		)

		BeforeEach(func() {
			settings = config.Settings{
				SchemaDir: filepath.Join(configTestFiles, "schema-test-files"),
				EnumDir:   filepath.Join(configTestFiles, "enum-test-files"),
				I18nDir:   filepath.Join(configTestFiles, "i18n-test-files"),
				Locale:    "en",
			}
		})

		It("should load the columns with translated labels", func() {
			catalog, err := loader.LoadCatalog(settings)
			Expect(err).NotTo(HaveOccurred())

			columns, schema, err := catalog.Columns("jobs", "en")

			Expect(err).NotTo(HaveOccurred())
			Expect(schema.OriginalSchema().Entity).To(Equal("jobPosting"))
			Expect(columns).To(HaveLen(5))
			Expect(columns[0].Label).To(Equal("Job title"))
			Expect(columns[3].Label).To(Equal("columns.company.name"))
		})

		It("should error on unknown tables", func() {
			catalog, err := loader.LoadCatalog(settings)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = catalog.Columns("wat", "en")
			Expect(err).To(HaveOccurred())
		})

		It("should fail the integrity check without the enums", func() {
			settings.EnumDir = filepath.Join(configTestFiles, "does-not-exist")

			_, err := loader.LoadCatalog(settings)
			Expect(err).To(BeAssignableToTypeOf(&config.UnknownColumnEnumError{}))
		})
	})
})
