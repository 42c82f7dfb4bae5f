package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"
)

var (
	// ErrUnknownEnum indicates that a requested enum is not
	// known to an EnumMapper.
	ErrUnknownEnum = errors.New("unknown enum")

	// ErrUnknownEnumKey indicates that a requested key is
	// not known to an Enum.
	ErrUnknownEnumKey = errors.New("unknown enum key")
)

// Enum lists the values a category column may take, each assigned to
// the translation key of its label.
// E.g. "OPEN" => "enum.jobStatus.open"
type Enum map[string]string

// KeyWithTranslation is a simple tuple of an enumeration key
// to its translation key.
type KeyWithTranslation struct {
	EnumKey, TranslationKey string
}

// TranslationKey retrieves the translation key for a single enum key, or
// returns an ErrUnknownEnumKey, if the key does not exist.
func (enum Enum) TranslationKey(key string) (string, error) {
	translationKey, exists := enum[key]
	if !exists || translationKey == "" {
		return "", ErrUnknownEnumKey
	}

	return translationKey, nil
}

// Entries returns all enum keys and their respective translation keys,
// ordered by enum key.
func (enum Enum) Entries() []KeyWithTranslation {
	entries := make([]KeyWithTranslation, 0, len(enum))
	for k, v := range enum {
		entries = append(entries, KeyWithTranslation{EnumKey: k, TranslationKey: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].EnumKey < entries[j].EnumKey
	})

	return entries
}

// Options returns the selectable values of the enum, ordered.
func (enum Enum) Options() []string {
	entries := enum.Entries()

	options := make([]string, len(entries))
	for i, entry := range entries {
		options[i] = entry.EnumKey
	}

	return options
}

// EnumMapper is a mapper which maps enum names to enums.
type EnumMapper struct {
	enums map[string]Enum
}

// NewEnumMapper creates an EnumMapper from already loaded enums.
func NewEnumMapper(enums map[string]Enum) EnumMapper {
	copied := make(map[string]Enum, len(enums))
	for name, enum := range enums {
		copied[name] = enum
	}

	return EnumMapper{enums: copied}
}

// NewEnumMapperFromFolder builds a new enum mapper from a given folder,
// recursively loading all enum jsons which are found in there. Enum names
// are the relative file paths with separators and extension removed.
func NewEnumMapperFromFolder(enumPath string) (EnumMapper, error) {
	enums := make(map[string]Enum)

	err := filepath.Walk(enumPath, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Ext(path) != dotJSON {
			if !f.IsDir() {
				log.WithField("file", path).Debug("Ignoring file, as not a json file!")
			}

			return nil
		}

		relativePath, err := filepath.Rel(enumPath, path)
		if err != nil {
			return err
		}

		keys, err := loadEnumFile(path)
		if err != nil {
			return err
		}

		enums[enumName(relativePath)] = keys

		return nil
	})
	if err != nil {
		return EnumMapper{}, err
	}

	log.WithField("count", len(enums)).Info("Successfully loaded enums")

	return EnumMapper{enums: enums}, nil
}

func enumName(relativePath string) string {
	name := strings.TrimSuffix(relativePath, filepath.Ext(relativePath))
	return strings.NewReplacer("/", "", "\\", "").Replace(name)
}

// TranslationKeyInEnum is a shortcut method for getting an enum, and immediately
// fetching a translation key from it.
func (enumMapper EnumMapper) TranslationKeyInEnum(enum, key string) (string, error) {
	fetchedEnum, err := enumMapper.Enum(enum)
	if err != nil {
		return "", err
	}

	return fetchedEnum.TranslationKey(key)
}

// Enum retrieves a specific enum from the mapper if existing, or returns an error
// otherwise.
func (enumMapper EnumMapper) Enum(enum string) (Enum, error) {
	fetched, exists := enumMapper.enums[enum]
	if !exists {
		return nil, ErrUnknownEnum
	}

	return fetched, nil
}

// Enums returns all enums which the mapper knows, in no particular order.
func (enumMapper EnumMapper) Enums() []Enum {
	enums := make([]Enum, 0, len(enumMapper.enums))
	for _, v := range enumMapper.enums {
		enums = append(enums, v)
	}

	return enums
}

func loadEnumFile(path string) (Enum, error) {
	file, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read enum %s", path)
	}

	dat := Enum{}
	if err := json.Unmarshal(file, &dat); err != nil {
		return nil, errors.Wrapf(err, "parse enum %s", path)
	}

	return dat, nil
}
