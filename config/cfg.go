package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// PageConfig holds page margins in millimeters.
	PageConfig struct {
		MarginLeft   float64 `yaml:"margin_left" validate:"gte=0,lte=50"`
		MarginTop    float64 `yaml:"margin_top" validate:"gte=0,lte=50"`
		MarginRight  float64 `yaml:"margin_right" validate:"gte=0,lte=50"`
		MarginBottom float64 `yaml:"margin_bottom" validate:"gte=0,lte=50"`
	}

	// FontsConfig holds font family and sizes in points. Stylesheet, when
	// present, is applied on top of these.
	FontsConfig struct {
		Family      string  `yaml:"family" validate:"required"`
		BaseSize    float64 `yaml:"base_size" validate:"gt=0,lte=24"`
		LineHeight  float64 `yaml:"line_height" validate:"gte=1,lte=3"`
		TitleSize   float64 `yaml:"title_size" validate:"gt=0,lte=48"`
		HeadingSize float64 `yaml:"heading_size" validate:"gt=0,lte=48"`
		TableSize   float64 `yaml:"table_size" validate:"gt=0,lte=24"`
		SmallSize   float64 `yaml:"small_size" validate:"gt=0,lte=24"`
	}

	// LogoConfig describes optional picture put on top of invoices.
	LogoConfig struct {
		Path  string  `yaml:"path" sanitize:"assure_file_access"`
		Width float64 `yaml:"width" validate:"gt=0,lte=100"`
	}

	DocumentConfig struct {
		NoRegistryNumber      string      `yaml:"no_registry_number" validate:"required"`
		FooterTemplate        string      `yaml:"footer_template"`
		StylesheetPath        string      `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate    string      `yaml:"output_name_template"`
		FileNameTransliterate bool        `yaml:"file_name_transliterate"`
		Compress              bool        `yaml:"compress"`
		Page                  PageConfig  `yaml:"page"`
		Fonts                 FontsConfig `yaml:"fonts"`
		Logo                  LogoConfig  `yaml:"logo"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field names above, these are expanded at run time
	// with document values rather than when configuration is loaded
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	FooterTemplateFieldName     TemplateFieldName = "footer_template"
)

// badFileName replaces output names which are empty after cleaning.
const badFileName = "dokument"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(FooterTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("configuration sanitization failed: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults and puts values
// from the file at path (if any) on top of them. Result is validated.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
