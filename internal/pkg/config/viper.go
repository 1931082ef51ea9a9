package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrConfigTypeRequired is returned by NewViperFromBytes for an empty format.
var ErrConfigTypeRequired = errors.New("config type is required")

// Viper is a Config backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper reads the file at pathFile and reloads it whenever it changes
// on disk. The format follows the file extension.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(strings.TrimSuffix(filename, path.Ext(filename)))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "error", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes reads configuration from memory, mostly for tests.
// configType is any format viper understands ("yaml", "json", ...).
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigTypeRequired
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func (vc *Viper) GetBool(key string) bool       { return vc.v.GetBool(key) }
func (vc *Viper) GetString(key string) string   { return vc.v.GetString(key) }
func (vc *Viper) GetInt(key string) int         { return vc.v.GetInt(key) }
func (vc *Viper) GetInt32(key string) int32     { return vc.v.GetInt32(key) }
func (vc *Viper) GetUint16(key string) uint16   { return uint16(vc.v.GetUint(key)) }
func (vc *Viper) GetFloat64(key string) float64 { return vc.v.GetFloat64(key) }

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

// GetArray accepts both a YAML list and a comma separated string.
func (vc *Viper) GetArray(key string) []string {
	var raw []string
	if list, ok := vc.v.Get(key).([]any); ok {
		raw = lo.Map(list, func(item any, _ int) string {
			s, _ := item.(string)
			return s
		})
	} else {
		raw = strings.Split(vc.v.GetString(key), ",")
	}

	return lo.Compact(lo.Map(raw, func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

// Close satisfies io.Closer; viper holds nothing to release.
func (vc *Viper) Close() error {
	return nil
}
