package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"
)

var (
	// ErrUnknownLanguage indicates that a requested language is
	// not known to a Translator.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrUnknownTranslation indicates that a requested translation
	// key is not known to a LanguageCatalog.
	ErrUnknownTranslation = errors.New("unknown translation key")
)

// LanguageCatalog is a mapping from translation keys to their individual translations.
// E.g. "columns.job.title" => "Job title"
type LanguageCatalog map[string]string

// Translate fetches the translation for a single key. An unknown key
// yields the key wrapped in question marks, alongside ErrUnknownTranslation.
func (languageCatalog LanguageCatalog) Translate(key string) (string, error) {
	translation, exists := languageCatalog[key]
	if !exists || translation == "" {
		return "??" + key + "??", ErrUnknownTranslation
	}

	return translation, nil
}

// Entries returns all translation keys and their respective translation.
func (languageCatalog LanguageCatalog) Entries() map[string]string {
	entries := make(map[string]string, len(languageCatalog))
	for k, v := range languageCatalog {
		entries[k] = v
	}

	return entries
}

// Translator translates column titles and enum labels for different languages.
type Translator struct {
	languages map[string]LanguageCatalog
}

// NewTranslator creates a Translator from already loaded catalogs.
func NewTranslator(languages map[string]LanguageCatalog) Translator {
	copied := make(map[string]LanguageCatalog, len(languages))
	for name, catalog := range languages {
		copied[name] = catalog
	}

	return Translator{languages: copied}
}

// NewTranslatorFromFolder builds a new translator from a given folder,
// recursively loading all i18n jsons which are found in there. The first
// level of folders names the language:
//
// /folder
// -- /de
// ---- somefile.json
// -- /en
// ---- anotherfile.json
func NewTranslatorFromFolder(i18nPath string) (Translator, error) {
	folders, err := ioutil.ReadDir(i18nPath)
	if err != nil {
		return Translator{}, errors.Wrapf(err, "list languages in %s", i18nPath)
	}

	keyCounts := make(map[int]struct{})
	languages := make(map[string]LanguageCatalog)

	for _, f := range folders {
		if !f.IsDir() {
			continue
		}

		name := f.Name()

		catalog, err := loadTranslationFiles(filepath.Join(i18nPath, name))
		if err != nil {
			return Translator{}, err
		}

		keyCounts[len(catalog)] = struct{}{}

		log.WithFields(
			"name", name,
			"keys", len(catalog),
		).Debug("Assembled language")

		languages[name] = catalog
	}

	log.WithField("count", len(languages)).Info("Successfully loaded languages")

	if len(keyCounts) > 1 {
		log.Warn("Loaded languages with differing key counts - enable debug logging to identify languages")
	}

	return Translator{languages: languages}, nil
}

// Translate is a shortcut method for getting a LanguageCatalog, and immediately
// fetching a translation from it. Might return either an ErrUnknownLanguage or
// ErrUnknownTranslation.
func (translator Translator) Translate(language, key string) (string, error) {
	languageCatalog, err := translator.Language(language)
	if err != nil {
		return "", err
	}

	return languageCatalog.Translate(key)
}

// Label translates a key for display. Missing languages or keys fall back
// to the key itself, so a label is always available.
func (translator Translator) Label(language, key string) string {
	if key == "" {
		return ""
	}

	translation, err := translator.Translate(language, key)
	if err != nil {
		log.WithFields("language", language, "key", key).Debug("No translation for label")
		return key
	}

	return translation
}

// Language retrieves a specific language catalog if existing, or returns an
// ErrUnknownLanguage otherwise.
func (translator Translator) Language(language string) (LanguageCatalog, error) {
	catalog, exists := translator.languages[language]
	if !exists {
		return nil, ErrUnknownLanguage
	}

	return catalog, nil
}

// Languages returns all language catalogs, in no particular order.
func (translator Translator) Languages() []LanguageCatalog {
	languageCatalogs := make([]LanguageCatalog, 0, len(translator.languages))
	for _, v := range translator.languages {
		languageCatalogs = append(languageCatalogs, v)
	}

	return languageCatalogs
}

func loadTranslationFiles(path string) (LanguageCatalog, error) {
	catalog := make(LanguageCatalog)

	err := filepath.Walk(path, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Ext(path) != dotJSON {
			if !f.IsDir() {
				log.WithField("file", path).Debug("Ignoring file, as not a json file!")
			}

			return nil
		}

		keys, err := loadTranslationKeys(path)
		if err != nil {
			return err
		}

		for key, value := range keys {
			catalog[key] = value
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

func loadTranslationKeys(path string) (map[string]string, error) {
	file, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read translations %s", path)
	}

	dat := make(map[string]string)
	if err := json.Unmarshal(file, &dat); err != nil {
		return nil, errors.Wrapf(err, "parse translations %s", path)
	}

	return dat, nil
}
