package config

import (
	_ "embed"
	"errors"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	EventLogName      = "events.log"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// ErrNoConfigDir is returned when a file is requested from a configuration
// that wasn't loaded from a directory.
var ErrNoConfigDir = errors.New("configuration has no directory")

type Configuration struct {
	configFs afero.Fs

	KeyPollIntervalMS int    `json:"key_poll_interval_ms" validate:"gte=1,lte=1000"`
	KeyBufferSize     int    `json:"key_buffer_size" validate:"gte=1"`
	Color             string `json:"color" validate:"oneof=always auto never"`
	EventLog          bool   `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// KeyPollInterval is the poll timeout of the key reader.
func (c *Configuration) KeyPollInterval() time.Duration {
	return time.Duration(c.KeyPollIntervalMS) * time.Millisecond
}

func (c *Configuration) fs() (afero.Fs, error) {
	if c.configFs == nil {
		return nil, ErrNoConfigDir
	}
	return c.configFs, nil
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	fs, err := c.fs()
	if err != nil {
		return nil, err
	}
	return fs.OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadEventLog() (afero.File, error) {
	fs, err := c.fs()
	if err != nil {
		return nil, err
	}
	return fs.OpenFile(EventLogName, os.O_RDONLY, 0600)
}

// Default returns the built in configuration, it has no directory.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
