package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/textspot/internal/config"
	"github.com/MeKo-Tech/textspot/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	globalConfig *config.Config
	cfgFile      string
)

var rootCmd = &cobra.Command{
	Use:   "textspot",
	Short: "Text spotting with detection, rectification and recognition",
	Long: `textspot finds and reads text in images. It runs a detection network
over the image, turns the probability surface into oriented boxes,
rectifies each region into a canonical strip and decodes the recognition
network's output into text.

Examples:
  textspot image photo.jpg
  textspot image scan.png --format csv --output results.csv
  textspot serve --port 8080`,
	Version: version.String(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing.
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/textspot, /etc/textspot)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("detection-model", "", "path to the detection ONNX model")
	rootCmd.PersistentFlags().String("recognition-model", "", "path to the recognition ONNX model")
	rootCmd.PersistentFlags().String("dictionary", "", "path to the character dictionary")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("models.detection_path", rootCmd.PersistentFlags().Lookup("detection-model"))
	_ = viper.BindPFlag("models.recognition_path", rootCmd.PersistentFlags().Lookup("recognition-model"))
	_ = viper.BindPFlag("models.dictionary_path", rootCmd.PersistentFlags().Lookup("dictionary"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}
		setupLogging(globalConfig)
	}
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	if cfg.Verbose {
		level = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func initConfig() {
	loader := config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = loader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = loader.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}
	return globalConfig
}
