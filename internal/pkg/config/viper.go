package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const envPrefix = "AQUARIUM"

// Viper is a Config implementation backed by github.com/spf13/viper.
//
// File-backed instances reload on change: a fresh viper instance is read and
// swapped in whole, so readers never see a half-applied file.
type Viper struct {
	current atomic.Pointer[viper.Viper]
	closed  atomic.Bool
}

// NewViper loads configuration from pathFile; its type follows the extension.
// Every key can be overridden from the environment, e.g.
// AQUARIUM_DATABASE_DRIVER for database.driver.
func NewViper(pathFile string) (*Viper, error) {
	v, err := readFile(pathFile)
	if err != nil {
		return nil, err
	}

	vc := &Viper{}
	vc.current.Store(v)

	v.OnConfigChange(func(ev fsnotify.Event) {
		if vc.closed.Load() || !ev.Has(fsnotify.Write|fsnotify.Create) {
			return
		}
		next, err := readFile(pathFile)
		if err != nil {
			slog.Error("config reload failed, keeping previous values", "path", pathFile, "error", err)
			return
		}
		vc.current.Store(next)
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return vc, nil
}

func readFile(pathFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Clean(pathFile))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", pathFile, err)
	}
	return v, nil
}

// NewViperFromBytes loads configuration from memory. configType is a format
// viper understands ("yaml", "json", "toml").
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	vc := &Viper{}
	vc.current.Store(v)
	return vc, nil
}

func (vc *Viper) get() *viper.Viper {
	return vc.current.Load()
}

func (vc *Viper) GetInt(key string) int {
	return vc.get().GetInt(key)
}

func (vc *Viper) GetInt32(key string) int32 {
	return vc.get().GetInt32(key)
}

func (vc *Viper) GetBool(key string) bool {
	return vc.get().GetBool(key)
}

func (vc *Viper) GetFloat64(key string) float64 {
	return vc.get().GetFloat64(key)
}

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.get().GetInt64(key)) * time.Second
}

func (vc *Viper) GetString(key string) string {
	return vc.get().GetString(key)
}

// GetArray accepts both a YAML list and a comma separated string.
func (vc *Viper) GetArray(key string) []string {
	v := vc.get()

	var raw []string
	if list, ok := v.Get(key).([]any); ok {
		for _, item := range list {
			raw = append(raw, fmt.Sprint(item))
		}
	} else {
		raw = strings.Split(v.GetString(key), ",")
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Close stops applying reloads. viper offers no way to stop its watcher, so
// file events after Close are ignored.
func (vc *Viper) Close() error {
	vc.closed.Store(true)
	return nil
}
