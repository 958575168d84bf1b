package config

import (
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shadow53/hoard-go/pkg/herr"
	"github.com/shadow53/hoard-go/pkg/types"
)

func parserForPath(path string) (koanf.Parser, error) {
	switch filepath.Ext(path) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, herr.Newf(herr.ErrConfigParse, "unrecognized config file extension %q", filepath.Ext(path))
	}
}

// Load reads the config file at path (format chosen by its extension)
// and assembles the domain Config model. hostEnv backs both default-cycle
// detection and, later, ${NAME} expansion at use sites.
func Load(path string, hostEnv func(string) (string, bool)) (*types.Config, error) {
	parser, err := parserForPath(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, herr.Wrapf(err, herr.ErrConfigParse, "reading config file %s", path)
	}

	var raw rawConfig
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &raw, conf); err != nil {
		return nil, herr.Wrapf(err, herr.ErrConfigParse, "parsing config file %s", path)
	}

	return Build(&raw, hostEnv)
}

// LoadBytes parses already-read config bytes of the given format
// ("toml", "yaml", "json"); the package tests load their fixtures
// through it.
func LoadBytes(format string, data []byte, hostEnv func(string) (string, bool)) (*types.Config, error) {
	var parser koanf.Parser
	switch format {
	case "toml":
		parser = toml.Parser()
	case "yaml", "yml":
		parser = yaml.Parser()
	case "json":
		parser = json.Parser()
	default:
		return nil, herr.Newf(herr.ErrConfigParse, "unrecognized config format %q", format)
	}

	k := koanf.New(".")
	if err := k.Load(rawBytesProvider{data}, parser); err != nil {
		return nil, herr.Wrap(err, herr.ErrConfigParse, "parsing config")
	}

	var raw rawConfig
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &raw,
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &raw, conf); err != nil {
		return nil, herr.Wrap(err, herr.ErrConfigParse, "parsing config")
	}

	return Build(&raw, hostEnv)
}

// rawBytesProvider adapts an in-memory byte slice to koanf's Provider
// interface.
type rawBytesProvider struct{ bytes []byte }

func (r rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, herr.New(herr.ErrInternal, "rawBytesProvider.Read is not implemented; use ReadBytes")
}
