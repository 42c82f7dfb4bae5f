package config_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tableaux-project/gridquery/config"
)

var _ = Describe("Translator", func() {
	var (
		translator config.Translator
		err        error
	)

	BeforeEach(func() {
		translator, err = config.NewTranslatorFromFolder(filepath.Join("testfiles", "i18n-test-files"))
	})

	Context("when trying to load the test files", func() {
		It("should not error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("contain exactly two languages", func() {
			Expect(translator.Languages()).To(HaveLen(2))
		})

		It("should contain the DE language catalog", func() {
			languageCatalog, err := translator.Language("de")
			Expect(err).NotTo(HaveOccurred())
			Expect(languageCatalog).ToNot(BeNil())
		})

		It("should error, when trying to access a non existing language", func() {
			_, err := translator.Language("wat")
			Expect(err).To(Equal(config.ErrUnknownLanguage))
		})

		It("should translate a known key", func() {
			translation, err := translator.Translate("en", "columns.job.salary")

			Expect(err).NotTo(HaveOccurred())
			Expect(translation).To(Equal("Salary"))
		})

		It("should mark unknown keys", func() {
			translation, err := translator.Translate("de", "columns.job.salary")

			Expect(err).To(Equal(config.ErrUnknownTranslation))
			Expect(translation).To(Equal("??columns.job.salary??"))
		})
	})

	Context("when rendering labels", func() {
		It("should use the translation when present", func() {
			Expect(translator.Label("de", "columns.job.title")).To(Equal("Stellenbezeichnung"))
		})

		It("should fall back to the key for unknown keys and languages", func() {
			Expect(translator.Label("de", "columns.job.salary")).To(Equal("columns.job.salary"))
			Expect(translator.Label("fr", "columns.job.title")).To(Equal("columns.job.title"))
		})

		It("should keep empty keys empty", func() {
			Expect(translator.Label("en", "")).To(Equal(""))
		})
	})

	Context("when working with a catalog", func() {
		It("should return a copy of its entries", func() {
			catalog, err := translator.Language("en")
			Expect(err).NotTo(HaveOccurred())

			entries := catalog.Entries()
			entries["columns.job.title"] = "changed"

			Expect(catalog.Translate("columns.job.title")).To(Equal("Job title"))
		})
	})

	Context("when trying to load a non existent path", func() {
		It("should error", func() {
			_, err := config.NewTranslatorFromFolder("i can't exist")

			Expect(err).To(HaveOccurred())
			Expect(errors.Cause(err)).To(BeAssignableToTypeOf(&os.PathError{}))
		})
	})
})
