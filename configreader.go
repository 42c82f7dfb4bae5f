package gridquery

import (
	"os"
	"path/filepath"

	"github.com/tableaux-project/gridquery/config"
)

func assetFolder(parts ...string) (string, error) {
	ex, err := os.Executable()
	if err != nil {
		return "", err
	}

	return filepath.Join(append([]string{filepath.Dir(ex), "assets"}, parts...)...), nil
}

// NewEnumMapperFromAssets creates a new EnumMapper from the asset folder, relative to the executing binary.
func NewEnumMapperFromAssets() (config.EnumMapper, error) {
	folder, err := assetFolder("enum")
	if err != nil {
		return config.EnumMapper{}, err
	}

	return config.NewEnumMapperFromFolder(folder)
}

// NewTranslatorFromAssets creates a new Translator from the asset folder, relative to the executing binary.
func NewTranslatorFromAssets() (config.Translator, error) {
	folder, err := assetFolder("i18n")
	if err != nil {
		return config.Translator{}, err
	}

	return config.NewTranslatorFromFolder(folder)
}

// NewSchemaMapperFromAssets creates a new SchemaMapper from the asset folder, relative to the executing binary.
func NewSchemaMapperFromAssets() (config.SchemaMapper, error) {
	folder, err := assetFolder("schema")
	if err != nil {
		return config.SchemaMapper{}, err
	}

	return config.NewSchemaMapperFromFolder(folder)
}
