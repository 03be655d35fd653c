package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.KeyPollInterval())
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.False(t, cfg.EventLog)
}

func TestDefault_noDirectory(t *testing.T) {
	_, err := Default().OpenEventLog()
	assert.ErrorIs(t, err, ErrNoConfigDir)

	_, err = Default().ReadEventLog()
	assert.ErrorIs(t, err, ErrNoConfigDir)
}

func TestConfiguration_Validate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default": {
			mutate: func(*Configuration) {},
		},
		"zero poll interval": {
			mutate:  func(c *Configuration) { c.KeyPollIntervalMS = 0 },
			wantErr: "key_poll_interval_ms",
		},
		"long poll interval": {
			mutate:  func(c *Configuration) { c.KeyPollIntervalMS = 5000 },
			wantErr: "key_poll_interval_ms",
		},
		"zero buffer": {
			mutate:  func(c *Configuration) { c.KeyBufferSize = 0 },
			wantErr: "key_buffer_size",
		},
		"bad color": {
			mutate:  func(c *Configuration) { c.Color = "sometimes" },
			wantErr: "color",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.Nil(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs())
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		assert.Nil(t, afero.WriteFile(fs, ConfigurationName, []byte("prompt: $\n"), 0600))

		_, err := LoadFs(fs)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data := []byte("key_poll_interval_ms: 0\nkey_buffer_size: 1\ncolor: auto\nevent_log: false\n")
		assert.Nil(t, afero.WriteFile(fs, ConfigurationName, data, 0600))

		_, err := LoadFs(fs)
		assert.Error(t, err)
	})

	t.Run("event log", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data := []byte("key_poll_interval_ms: 10\nkey_buffer_size: 8\ncolor: never\nevent_log: true\n")
		assert.Nil(t, afero.WriteFile(fs, ConfigurationName, data, 0600))

		cfg, err := LoadFs(fs)
		assert.Nil(t, err)
		assert.Equal(t, 10*time.Millisecond, cfg.KeyPollInterval())
		assert.Equal(t, 8, cfg.KeyBufferSize)
		assert.True(t, cfg.EventLog)

		w, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		_, err = w.Write([]byte("{}\n"))
		assert.Nil(t, err)
		assert.Nil(t, w.Close())

		contents, err := afero.ReadFile(fs, EventLogName)
		assert.Nil(t, err)
		assert.Equal(t, "{}\n", string(contents))
	})
}
