package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/goccy/go-yaml"
	"github.com/spf13/viper"
)

// ConfigBaseName is the base name of the configuration file without extension.
const ConfigBaseName = "eigenda"

// ConfigExtension is the file extension for the configuration file without the leading dot.
const ConfigExtension = "yaml"

// ConfigFileName is the filename of the configuration file.
const ConfigFileName = ConfigBaseName + "." + ConfigExtension

// ErrReadYaml is the error returned when reading the configuration file fails.
var ErrReadYaml = fmt.Errorf("reading %s", ConfigFileName)

// ReadYaml reads dir/eigenda.yaml on top of DefaultConfig.
func ReadYaml(dir string) (config Config, err error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, ConfigFileName))

	config = DefaultConfig
	config.Instrumentation = DefaultInstrumentationConfig()
	setDefaultsInViper(v, config)

	if err = v.ReadInConfig(); err != nil {
		err = fmt.Errorf("%w decoding file: %w", ErrReadYaml, err)
		return
	}
	if err = v.Unmarshal(&config, decoderOptions); err != nil {
		err = fmt.Errorf("%w unmarshaling config: %w", ErrReadYaml, err)
		return
	}
	config.RootDir = dir
	return
}

// WriteYamlConfig writes config to <RootDir>/eigenda.yaml, with every field's
// comment tag rendered as a head comment.
func WriteYamlConfig(config Config) error {
	configPath := filepath.Join(config.RootDir, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPerm); err != nil {
		return err
	}
	if config.Instrumentation == nil {
		config.Instrumentation = DefaultInstrumentationConfig()
	}

	comments := yaml.CommentMap{}
	var processFields func(t reflect.Type, prefix string)
	processFields = func(t reflect.Type, prefix string) {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			yamlTag := field.Tag.Get("yaml")
			if !field.IsExported() || yamlTag == "" || yamlTag == "-" {
				continue
			}

			fieldPath := yamlTag
			if prefix != "" {
				fieldPath = prefix + "." + yamlTag
			}
			if comment := field.Tag.Get("comment"); comment != "" {
				comments["$."+fieldPath] = []*yaml.Comment{yaml.HeadComment(comment)}
			}

			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(DurationWrapper{}) {
				processFields(ft, fieldPath)
			}
		}
	}
	processFields(reflect.TypeOf(Config{}), "")

	data, err := yaml.MarshalWithOptions(config, yaml.WithComment(comments))
	if err != nil {
		return fmt.Errorf("error marshaling YAML data: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("error writing %s file: %w", ConfigFileName, err)
	}
	return nil
}

// EnsureRoot ensures that the root directory exists.
func EnsureRoot(rootDir string) error {
	if rootDir == "" {
		return fmt.Errorf("root directory cannot be empty")
	}
	if err := os.MkdirAll(rootDir, DefaultDirPerm); err != nil {
		return fmt.Errorf("could not create directory %q: %w", rootDir, err)
	}
	return nil
}
