package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "config file path")
	flags.StringP("lang", "l", "", "language (e.g., en, zh-Hans)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	flags.String("index-file-name", "", "index file name without extension")
	flags.String("indexing-format", "", "index record template")
	flags.String("download-location", "", "default download directory, none for no default")
	flags.String("date", "", "date written for [DATE], defaults to today")

	flags.Bool("video-only", false, "download video streams without audio")
	flags.String("max-download-size", "", "maximum file size in MiB, -1 for unlimited")
	flags.String("max-video-quality", "", "video quality tier (-1 to 6, -1 for audio only)")
	flags.String("max-audio-quality", "", "audio quality tier (0 to 3)")

	flags.String("encoding-standard", "", "encoding preset tier (0 to 4)")
	flags.String("crf", "", "quality vs size tier (0 to 4)")
	flags.Bool("use-h265", false, "encode with libx265 instead of libx264")

	flags.Bool("auto-install", false, "download yt-dlp if it is not installed")
	flags.Bool("verbose", false, "pass --verbose to yt-dlp")

	bindFlags(cmd)
}

func bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	viper.BindPFlag("lang", flags.Lookup("lang"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))

	viper.BindPFlag("indexing.index_file_name", flags.Lookup("index-file-name"))
	viper.BindPFlag("indexing.indexing_format", flags.Lookup("indexing-format"))
	viper.BindPFlag("indexing.default_download_location", flags.Lookup("download-location"))
	viper.BindPFlag("indexing.date", flags.Lookup("date"))

	viper.BindPFlag("downloading.video_only", flags.Lookup("video-only"))
	viper.BindPFlag("downloading.max_download_size", flags.Lookup("max-download-size"))
	viper.BindPFlag("downloading.max_video_quality", flags.Lookup("max-video-quality"))
	viper.BindPFlag("downloading.max_audio_quality", flags.Lookup("max-audio-quality"))

	viper.BindPFlag("encoding.encoding_standard", flags.Lookup("encoding-standard"))
	viper.BindPFlag("encoding.crf", flags.Lookup("crf"))
	viper.BindPFlag("encoding.use_h265", flags.Lookup("use-h265"))

	viper.BindPFlag("engine.auto_install", flags.Lookup("auto-install"))
	viper.BindPFlag("engine.verbose", flags.Lookup("verbose"))
}

func GetConfigFile(cmd *cobra.Command) string {
	configFile, _ := cmd.Flags().GetString("config")
	return configFile
}
