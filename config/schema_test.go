package config_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tableaux-project/gridquery/config"
)

var _ = Describe("Schema", func() {
	var (
		mapper config.SchemaMapper
		err    error
	)

	Describe("While working with broken files", func() {
		Context("when trying to load the broken test files", func() {
			It("should error with the underlying syntax error", func() {
				_, err := config.NewSchemaMapperFromFolder(filepath.Join("testfiles", "schema-broken-files", "simplybroken"))

				Expect(err).To(HaveOccurred())
				Expect(errors.Cause(err)).To(BeAssignableToTypeOf(&json.SyntaxError{}))
			})
		})

		Context("when trying to load a non existent path", func() {
			It("should error", func() {
				_, err := config.NewSchemaMapperFromFolder("i can't exist")

				Expect(err).To(HaveOccurred())
				Expect(errors.Cause(err)).To(BeAssignableToTypeOf(&os.PathError{}))
			})
		})

		Context("when trying to load a path which contains files with missing references", func() {
			It("should error", func() {
				_, err := config.NewSchemaMapperFromFolder(filepath.Join("testfiles", "schema-wrong-reference"))

				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(&config.UnresolvableSchemaError{}))
				Expect(err.Error()).To(Equal("cannot resolve table schema subfolder/company"))
			})
		})

		Context("when trying to load a file which does not describe a table schema", func() {
			It("should error, listing the problems", func() {
				_, err := config.NewSchemaMapperFromFolder(filepath.Join("testfiles", "schema-invalid"))

				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(&config.InvalidSchemaError{}))

				invalid := err.(*config.InvalidSchemaError)
				Expect(invalid.Problems()).NotTo(BeEmpty())
			})
		})

		Context("when extensions produce the same column twice", func() {
			It("should error", func() {
				_, err := config.NewSchemaMapperFromFolder(filepath.Join("testfiles", "schema-duplicate"))

				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(&config.DuplicateColumnError{}))
				Expect(err.Error()).To(Equal("duplicate column city in schema jobs"))
			})
		})

		Context("when trying to validate a file which contains an unknown column type", func() {
			It("should error", func() {
				mapper, mapperErr := config.NewSchemaMapperFromFolder(filepath.Join("testfiles", "schema-unknown-type"))
				Expect(mapperErr).ToNot(HaveOccurred())

				err := mapper.ValidateIntegrity(config.EnumMapper{})

				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(&config.UnknownColumnTypeError{}))
				Expect(err.Error()).To(Equal("unknown column type currency in column salary of schema jobPosting"))
			})
		})
	})

	Describe("While working with correct files", func() {
		BeforeEach(func() {
			mapper, err = config.NewSchemaMapperFromFolder(filepath.Join("testfiles", "schema-test-files"))
		})

		Context("when trying to load the test files", func() {
			It("should not error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("contain exactly two schemas", func() {
				Expect(mapper.Schemas()).To(HaveLen(2))
				Expect(mapper.ResolvedSchemas()).To(HaveLen(2))
			})

			It("should contain the schema file from the sub folder", func() {
				validSchema, err := mapper.Schema("subfolder/company")
				Expect(err).NotTo(HaveOccurred())
				Expect(validSchema.Entity).To(Equal("company"))
			})

			It("should error, when trying to access an unknown schema", func() {
				tableSchema, err := mapper.Schema("wat")

				Expect(err).To(Equal(config.ErrUnknownSchema))
				Expect(tableSchema).To(Equal(config.TableSchema{}))
			})

			It("should error, when trying to access an unknown resolved schema", func() {
				resolvedTableSchema, err := mapper.ResolvedSchema("wat")

				Expect(err).To(Equal(config.ErrUnknownSchema))
				Expect(resolvedTableSchema).To(Equal(config.ResolvedTableSchema{}))
			})
		})

		Context("when working with a loaded schema", func() {
			var (
				tableSchema config.TableSchema
			)

			JustBeforeEach(func() {
				tableSchema, err = mapper.Schema("jobs")
				Expect(err).NotTo(HaveOccurred())
			})

			It("should contain the parsed entity", func() {
				Expect(tableSchema.Entity).To(Equal("jobPosting"))
			})

			It("should contain the parsed extensions and exclusions", func() {
				Expect(tableSchema.Extensions).To(Equal([]config.TableSchemaExtensionTable{
					{Title: "columns.company", Table: "subfolder/company", Key: "company"},
				}))
				Expect(tableSchema.Exclusions).To(Equal([]config.TableSchemaExclusion{"company.id"}))
			})

			It("should contain the parsed columns", func() {
				Expect(tableSchema.Columns).To(HaveLen(3))

				Expect(tableSchema.Columns[0]).To(Equal(config.TableSchemaColumn{
					Key:        "title",
					Title:      "columns.job.title",
					Type:       "text",
					Sortable:   true,
					Searchable: true,
					FrontendHints: map[string]interface{}{
						"showDefault": true,
					},
				}))

				Expect(tableSchema.Columns[2].Enum).To(Equal("jobStatus"))
			})
		})

		Context("when working with a resolved schema", func() {
			var (
				resolvedTableSchema config.ResolvedTableSchema
			)

			JustBeforeEach(func() {
				resolvedTableSchema, err = mapper.ResolvedSchema("jobs")
				Expect(err).NotTo(HaveOccurred())
			})

			It("should contain the original schema", func() {
				original, err := mapper.Schema("jobs")
				Expect(err).NotTo(HaveOccurred())
				Expect(resolvedTableSchema.OriginalSchema()).To(Equal(original))
			})

			It("should error when trying to access a non existing column", func() {
				column, err := resolvedTableSchema.Column("wat")

				Expect(err).To(Equal(config.ErrUnknownColumn))
				Expect(column).To(Equal(config.TableSchemaColumn{}))
			})

			It("should append the extension columns, without the excluded ones", func() {
				keys := []string{}
				for _, column := range resolvedTableSchema.Columns() {
					keys = append(keys, column.Key)
				}

				Expect(keys).To(Equal([]string{"title", "salary", "status", "company.name", "company.founded"}))
			})

			It("should nest the paths of extension columns below the extension key", func() {
				Expect(resolvedTableSchema.Column("company.name")).To(Equal(config.TableSchemaColumn{
					Key:          "company.name",
					Title:        "columns.company.name",
					Type:         "text",
					Sortable:     true,
					Searchable:   true,
					SortField:    "company.sortName",
					SearchFields: []string{"company.name", "company.city"},
				}))

				founded, err := resolvedTableSchema.Column("company.founded")
				Expect(err).NotTo(HaveOccurred())
				Expect(founded.Path).To(Equal("company.meta.founded"))
			})
		})

		Context("when trying to validate the table schemas", func() {
			It("should error without the referenced enum", func() {
				err := mapper.ValidateIntegrity(config.EnumMapper{})

				Expect(err).To(BeAssignableToTypeOf(&config.UnknownColumnEnumError{}))
				Expect(err.Error()).To(Equal("unknown enum jobStatus in column status of schema jobPosting"))
			})

			It("should not error with the referenced enum", func() {
				enums := config.NewEnumMapper(map[string]config.Enum{"jobStatus": {"OPEN": "enum.jobStatus.open"}})

				Expect(mapper.ValidateIntegrity(enums)).To(Succeed())
			})
		})
	})
})
