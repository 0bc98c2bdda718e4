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

	// RemoteConfig addresses the presentation document service.
	RemoteConfig struct {
		Endpoint string       `yaml:"endpoint" validate:"required,url"`
		Token    SecretString `yaml:"token"`
		Timeout  Duration     `yaml:"timeout" validate:"gt=0"`
	}

	// UploadConfig addresses the bucket local deck images are served from.
	// Disabled uploads make decks with local image references fail early
	// instead of producing slides with dead links.
	UploadConfig struct {
		Enable      bool         `yaml:"enable"`
		Endpoint    string       `yaml:"endpoint" validate:"required_unless=Enable false"`
		Region      string       `yaml:"region"`
		Bucket      string       `yaml:"bucket" validate:"required_unless=Enable false"`
		AccessKey   string       `yaml:"access_key"`
		SecretKey   SecretString `yaml:"secret_key"`
		UseTLS      bool         `yaml:"use_tls"`
		PublicURL   string       `yaml:"public_url" validate:"omitempty,url"`
		CachePath   string       `yaml:"cache_path" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
		JPEGQuality int          `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		MaxRaster   int          `yaml:"max_raster_dimension" validate:"min=0"`
	}

	// ThrottleConfig keeps batch dispatch and uploads under the remote rate
	// ceilings.
	ThrottleConfig struct {
		MaxMediaPerBatch int      `yaml:"max_media_per_batch" validate:"min=0"`
		BatchDelay       Duration `yaml:"batch_delay" validate:"gte=0"`
		UploadDelay      Duration `yaml:"upload_delay" validate:"gte=0"`
		UploadPauseEvery int      `yaml:"upload_pause_every" validate:"min=0"`
		UploadPause      Duration `yaml:"upload_pause" validate:"gte=0"`
	}

	// RenderConfig shapes the rendering itself.
	RenderConfig struct {
		Erase              EraseMode `yaml:"erase" validate:"gte=0,lte=2"`
		TitleTemplate      string    `yaml:"title_template"`
		StylesheetDefaults bool      `yaml:"stylesheet_defaults"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Remote    RemoteConfig   `yaml:"remote"`
		Upload    UploadConfig   `yaml:"upload"`
		Throttle  ThrottleConfig `yaml:"throttle"`
		Render    RenderConfig   `yaml:"render"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	RenderTitleTemplateFieldName TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	// title template is expanded at render time with deck values
	gencfg.WithDoNotExpandField(string(RenderTitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
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

	// overwrite cfg values with values from the file
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

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
