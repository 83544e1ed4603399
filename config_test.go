package pvdata_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/rs/zerolog"

	"github.com/stewi1014/pvdata"
	"github.com/stewi1014/pvdata/bytebuf"
	"github.com/stewi1014/pvdata/encio"
)

func TestDefaultConfig(t *testing.T) {
	cfg := pvdata.DefaultConfig()

	td.CmpNoError(t, cfg.Validate())
	td.Cmp(t, cfg.ByteOrder, "big")
	td.Cmp(t, cfg.BufferSize, pvdata.DefaultBufferSize)
	td.Cmp(t, cfg.Log.Level, "info")

	buf, err := cfg.NewBuffer()
	td.CmpNoError(t, err)
	td.Cmp(t, buf.Size(), pvdata.DefaultBufferSize)
	td.Cmp(t, buf.Order(), bytebuf.BigEndian)
}

func TestParseConfig(t *testing.T) {
	testCases := []struct {
		desc string
		data string
		want pvdata.Config
	}{
		{
			desc: "Empty",
			data: "",
			want: pvdata.DefaultConfig(),
		},
		{
			desc: "All",
			data: `
byte_order = "little"
buffer_size = 64
metrics = true

[log]
level = "debug"
timestamp = false
console = true
`,
			want: pvdata.Config{
				ByteOrder:  "little",
				BufferSize: 64,
				Log:        pvdata.LogConfig{Level: "debug", Timestamp: false, Console: true},
				Metrics:    true,
			},
		},
		{
			desc: "Partial",
			data: `buffer_size = 128`,
			want: pvdata.Config{
				ByteOrder:  "big",
				BufferSize: 128,
				Log:        pvdata.LogConfig{Level: "info", Timestamp: true},
			},
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			t.Setenv(pvdata.EnvLogLevel, "")
			cfg, err := pvdata.ParseConfig([]byte(tC.data))
			td.CmpNoError(t, err)
			td.Cmp(t, cfg, tC.want)
		})
	}
}

func TestParseConfigInvalid(t *testing.T) {
	testCases := []struct {
		desc string
		data string
		is   error
	}{
		{desc: "Byte order", data: `byte_order = "middle"`, is: encio.ErrInvalidByteOrder},
		{desc: "Buffer size", data: `buffer_size = 4`, is: encio.ErrBadArgument},
		{desc: "Buffer smaller than an element", data: `buffer_size = 7`, is: encio.ErrBadArgument},
		{desc: "Log level", data: "[log]\nlevel = \"loud\""},
		{desc: "Syntax", data: `byte_order = `},
		{desc: "Type", data: `buffer_size = "big"`},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			t.Setenv(pvdata.EnvLogLevel, "")
			_, err := pvdata.ParseConfig([]byte(tC.data))
			td.CmpError(t, err)
			if tC.is != nil {
				if !errors.Is(err, tC.is) {
					t.Errorf("got %v, want %v", err, tC.is)
				}
			}
		})
	}
}

func TestLogLevelOverride(t *testing.T) {
	t.Setenv(pvdata.EnvLogLevel, " warn ")

	cfg, err := pvdata.ParseConfig([]byte("[log]\nlevel = \"debug\""))
	td.CmpNoError(t, err)
	td.Cmp(t, cfg.Log.Level, "warn")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(pvdata.EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "pvdata.toml")
	err := os.WriteFile(path, []byte("byte_order = \"little\"\nbuffer_size = 32\n"), 0o600)
	td.Require(t).CmpNoError(err)

	cfg, err := pvdata.LoadConfig(path)
	td.CmpNoError(t, err)
	td.Cmp(t, cfg.ByteOrder, "little")
	td.Cmp(t, cfg.BufferSize, 32)

	_, err = pvdata.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want %v", err, os.ErrNotExist)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := pvdata.DefaultConfig()
	cfg.Log.Level = "warn"
	cfg.Log.Timestamp = false

	var out bytes.Buffer
	logger := cfg.NewLogger(&out)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	var entry map[string]interface{}
	td.Require(t).CmpNoError(json.Unmarshal(out.Bytes(), &entry))
	td.Cmp(t, entry, map[string]interface{}{
		"level":   "warn",
		"lib":     "pvdata",
		"message": "shown",
	})
}

func TestConfigureLogging(t *testing.T) {
	defer func(warnings zerolog.Logger, requester encio.Requester) {
		encio.Warnings = warnings
		encio.DefaultRequester = requester
	}(encio.Warnings, encio.DefaultRequester)

	var out bytes.Buffer
	pvdata.ConfigureLogging(nil, &out)

	encio.DefaultRequester.Message("value field is immutable", encio.ErrorMessage)

	var entry map[string]interface{}
	td.Require(t).CmpNoError(json.Unmarshal(out.Bytes(), &entry))
	td.Cmp(t, entry, td.SuperMapOf(map[string]interface{}{
		"level":     "error",
		"lib":       "pvdata",
		"message":   "value field is immutable",
		"requester": "pvdata",
	}, nil))
}
