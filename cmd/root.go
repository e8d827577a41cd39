package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobmatch"
)

type Config struct {
	JobseekersFile string        `mapstructure:"jobseekers-file"`
	JobsFile       string        `mapstructure:"jobs-file"`
	Database       string        `mapstructure:"database"`
	MinScore       float64       `mapstructure:"min-score"`
	Workers        int           `mapstructure:"workers"`
	Output         *OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
	Save   bool   `mapstructure:"save"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobmatch is a simple cli for ranking jobs for jobseekers by skill coverage",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database", "JOBMATCH_DATABASE"); err != nil {
		log.Fatalf("binding JOBMATCH_DATABASE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
