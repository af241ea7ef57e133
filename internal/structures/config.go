package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// StorageConfig selects the asset backend. An empty ImageStoreConnection
// keeps images on the local filesystem under WebRoot.
type StorageConfig struct {
	ImageStoreConnection string `yaml:"imageStoreConnection"`
	WebRoot              string `yaml:"webRoot" validate:"required|unixPath"`
	MaxUploadBytes       int64  `yaml:"maxUploadBytes" validate:"required|min:1"`
}

type ViewLogConfig struct {
	Connection string `yaml:"connection"`
}

type ArchiveConfig struct {
	Dir      string        `yaml:"dir" validate:"unixPath"`
	Interval time.Duration `yaml:"interval"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Logger    LoggerConfig  `yaml:"logger"`
	Storage   StorageConfig `yaml:"storage"`
	ViewLog   ViewLogConfig `yaml:"viewLog"`
	Archive   ArchiveConfig `yaml:"archive"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
