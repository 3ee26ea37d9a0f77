package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const ConfigName = "download_manager"

type Config struct {
	Lang string `toml:"lang" mapstructure:"lang" json:"lang"`

	Log         logConfig         `toml:"log" mapstructure:"log" json:"log"`
	Indexing    indexingConfig    `toml:"indexing" mapstructure:"indexing" json:"indexing"`
	Downloading downloadingConfig `toml:"downloading" mapstructure:"downloading" json:"downloading"`
	Encoding    encodingConfig    `toml:"encoding" mapstructure:"encoding" json:"encoding"`
	Engine      engineConfig      `toml:"engine" mapstructure:"engine" json:"engine"`
}

type logConfig struct {
	Level string `toml:"level" mapstructure:"level" json:"level"`
}

type indexingConfig struct {
	IndexFileName           string `toml:"index_file_name" mapstructure:"index_file_name" json:"index_file_name"`
	IndexingFormat          string `toml:"indexing_format" mapstructure:"indexing_format" json:"indexing_format"`
	DefaultDownloadLocation string `toml:"default_download_location" mapstructure:"default_download_location" json:"default_download_location"`
	// Date overrides the [DATE] value, empty means today.
	Date string `toml:"date" mapstructure:"date" json:"date"`
}

type downloadingConfig struct {
	VideoOnly       bool   `toml:"video_only" mapstructure:"video_only" json:"video_only"`
	MaxDownloadSize string `toml:"max_download_size" mapstructure:"max_download_size" json:"max_download_size"`
	MaxVideoQuality string `toml:"max_video_quality" mapstructure:"max_video_quality" json:"max_video_quality"`
	MaxAudioQuality string `toml:"max_audio_quality" mapstructure:"max_audio_quality" json:"max_audio_quality"`
}

type encodingConfig struct {
	EncodingStandard string `toml:"encoding_standard" mapstructure:"encoding_standard" json:"encoding_standard"`
	CRF              string `toml:"crf" mapstructure:"crf" json:"crf"`
	UseH265          bool   `toml:"use_h265" mapstructure:"use_h265" json:"use_h265"`
}

type engineConfig struct {
	// AutoInstall downloads a yt-dlp binary when none is found on PATH.
	AutoInstall     bool `toml:"auto_install" mapstructure:"auto_install" json:"auto_install"`
	Verbose         bool `toml:"verbose" mapstructure:"verbose" json:"verbose"`
	Retries         int  `toml:"retries" mapstructure:"retries" json:"retries"`
	FragmentRetries int  `toml:"fragment_retries" mapstructure:"fragment_retries" json:"fragment_retries"`
}

var cfg *Config

// C returns the loaded configuration. Init must have succeeded before.
func C() *Config {
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lang", "en")
	v.SetDefault("log.level", "info")

	v.SetDefault("indexing.index_file_name", "index")
	v.SetDefault("indexing.indexing_format", "[PLATFORM] | [TITLE] | [URL] | [DATE] | [ARTIST_LIST]")
	v.SetDefault("indexing.default_download_location", "none")

	v.SetDefault("downloading.video_only", false)
	v.SetDefault("downloading.max_download_size", "-1")
	v.SetDefault("downloading.max_video_quality", "5")
	v.SetDefault("downloading.max_audio_quality", "2")

	v.SetDefault("encoding.encoding_standard", "2")
	v.SetDefault("encoding.crf", "2")
	v.SetDefault("encoding.use_h265", false)

	v.SetDefault("engine.auto_install", false)
	v.SetDefault("engine.verbose", false)
	v.SetDefault("engine.retries", 3)
	v.SetDefault("engine.fragment_retries", 5)
}

// Init loads the configuration from configFile, or from the first download_manager.toml found
// in the search paths. A default file is written when none exists.
func Init(ctx context.Context, configFile string) error {
	c, err := load(ctx, viper.GetViper(), configFile)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

func load(ctx context.Context, v *viper.Viper, configFile string) (*Config, error) {
	logger := log.FromContext(ctx)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/download-manager")
		v.AddConfigPath("/etc/download-manager/")
	}
	v.SetConfigType("toml")
	v.SetEnvPrefix("DLMGR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if configFile == "" && errors.As(err, &notFound) {
		if err := v.SafeWriteConfigAs(ConfigName + ".toml"); err != nil {
			return nil, fmt.Errorf("error saving default config: %w", err)
		}
		logger.Info("Wrote default config", "file", ConfigName+".toml")
		err = v.ReadInConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file: %w", err)
	}
	logger.Debug("Loaded config", "file", v.ConfigFileUsed())
	return c, nil
}
