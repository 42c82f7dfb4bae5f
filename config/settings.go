package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
	"gopkg.in/birkirb/loggers.v1/log"
)

// EnvPrefix prefixes all environment variables that override settings,
// e.g. GRIDQUERY_PAGESIZE=50.
const EnvPrefix = "GRIDQUERY_"

const defaultPageSize = 20

// Settings are the command line defaults, layered from built-in values, an
// optional TOML file and the environment.
type Settings struct {
	SchemaDir string `koanf:"schemadir"`
	EnumDir   string `koanf:"enumdir"`
	I18nDir   string `koanf:"i18ndir"`
	Locale    string `koanf:"locale"`
	PageSize  int    `koanf:"pagesize"`
}

func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"schemadir": "assets/schema",
		"enumdir":   "assets/enum",
		"i18ndir":   "assets/i18n",
		"locale":    "en",
		"pagesize":  defaultPageSize,
	}
}

// LoadSettings reads the settings. An empty path, or a path that does not
// exist, skips the file layer.
func LoadSettings(path string) (Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		return Settings{}, errors.Wrap(err, "load default settings")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return Settings{}, errors.Wrapf(err, "load settings %s", path)
			}
		} else {
			log.WithField("file", path).Debug("Settings file not found, using defaults")
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Settings{}, errors.Wrap(err, "load settings from environment")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return Settings{}, errors.Wrap(err, "decode settings")
	}

	if settings.PageSize <= 0 {
		settings.PageSize = defaultPageSize
	}

	return settings, nil
}
