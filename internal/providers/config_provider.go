package providers

import (
	"fmt"
	"imgstore/internal/structures"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultCacheTTL       = 30
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.maxUploadBytes", defaultMaxUploadBytes)
	v.SetDefault("cache.ttl", fmt.Sprintf("%ds", defaultCacheTTL))

	v.BindEnv("logger.level", "IMGSTORE_LOG_LEVEL")
	v.BindEnv("storage.imageStoreConnection", "IMGSTORE_IMAGE_STORE_CONNECTION")
	v.BindEnv("viewLog.connection", "IMGSTORE_VIEWLOG_CONNECTION")
	v.BindEnv("cache.enabled", "IMGSTORE_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ImageStore"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
