package main

import (
	"log"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/raster-kernels/internal/pipeline"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "raster-kernels",
	Short: "Grayscale, blur and edge detection raster pipelines",
	Long: `raster-kernels derives grayscale, blurred and edge-detected rasters from a
source image. Run "render" to write the variants to disk, or "serve" to expose
the stages as MCP tools over stdio. Without a subcommand the MCP server starts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.raster-kernels.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug enables per-stage timings)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetDefault("output_dir", ".")
}

func initConfig() {
	home := ""
	if cfgFile == "" {
		var err error
		if home, err = homedir.Dir(); err != nil {
			log.Fatalf("Cannot locate home directory: %v", err)
		}
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("RASTER")

	if err := readConfig(cfgFile, home); err != nil {
		if cfgFile != "" {
			log.Fatalf("Cannot read config file: %v", err)
		}
		log.Printf("Ignoring config file: %v", err)
	}
}

// readConfig reads cfgFile, or ".raster-kernels" in home when cfgFile is
// empty. A missing default config is not an error; one that exists but cannot
// be parsed is.
func readConfig(cfgFile, home string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigName(".raster-kernels")
	}

	err := viper.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
		return nil
	}
	if err != nil {
		return err
	}
	log.Println("Using config file:", viper.ConfigFileUsed())
	return nil
}

// debugLogger returns the logger for per-stage timings, or nil when
// log_level is not debug.
func debugLogger() *log.Logger {
	if !strings.EqualFold(viper.GetString("log_level"), "debug") {
		return nil
	}
	return log.New(os.Stderr, "[debug] ", log.Ldate|log.Ltime)
}

// configuredVariants returns the variants listed under the "variants" key,
// or the four defaults when the key is absent.
func configuredVariants() ([]pipeline.Variant, error) {
	if !viper.IsSet("variants") {
		return pipeline.DefaultVariants(), nil
	}

	var configs []pipeline.VariantConfig
	if err := viper.UnmarshalKey("variants", &configs); err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return pipeline.DefaultVariants(), nil
	}
	return pipeline.BuildVariants(configs)
}
