package cli

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meescheck/meescheck/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "meescheck",
	Short: "meescheck - MEES compliance and exemption checks for landlords (advisory)",
	Long: `meescheck helps landlords work out where a rental property stands
against the MEES minimum energy efficiency standard.

It reads Energy Performance Certificates, walks the exemption questions
an adviser would ask, and grades how strong an exemption claim looks
together with the evidence still needed to support it.

meescheck is advisory, not authoritative: it never registers an
exemption and its verdicts are not legal advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for meescheck.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("meescheck v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.meescheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.meescheck")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MEESCHECK_*
	viper.SetEnvPrefix("MEESCHECK")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the config file and environment that initConfig read
// into viper on top of the built-in defaults. Flag overrides are applied
// afterwards by buildConfig, completing the flags > env > file > defaults
// hierarchy.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	decodeYAMLKeys := func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }
	if err := viper.Unmarshal(cfg, decodeYAMLKeys); err != nil {
		return nil, fmt.Errorf("apply configuration: %w", err)
	}
	return cfg, nil
}
