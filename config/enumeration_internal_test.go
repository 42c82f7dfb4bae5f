package config

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Enum mapper internals", func() {
	Context("when trying to load a non existing file", func() {
		It("should error", func() {
			_, err := loadEnumFile("does-not-exist.json")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when deriving enum names from file paths", func() {
		It("should drop separators and extension, preserving casing", func() {
			Expect(enumName("jobStatus.json")).To(Equal("jobStatus"))
			Expect(enumName("contract/Type.json")).To(Equal("contractType"))
		})
	})
})
