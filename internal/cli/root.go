// Package cli wires the command surface. Core packages never read flags,
// environment, or config files; this package assembles an explicit
// model.Config and hands it down.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/obsmith/semvault/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "semvault",
	Short: "Semvault - semantic tag extraction for Obsidian-style vaults",
	Long: `Semvault extracts inline semantic tag markers from markdown vaults and
aggregates them into deduplicated, hierarchical knowledge registries.

It scans notes for markers of the form

  %%tag::TYPE::ID::"LABEL"::PARENT%%

then reconciles duplicates and contradictions, resolves parent/child
hierarchy, and renders reports and per-kind registries. It never modifies
the notes it reads.`,
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
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("semvault v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.semvault/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("vault", "", "vault root path")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("vault.path", rootCmd.PersistentFlags().Lookup("vault"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.semvault")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match SEMVAULT_*
	viper.SetEnvPrefix("SEMVAULT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers viper state (config file, environment, bound flags) over
// the built-in defaults. Per-command flags apply on top of the result.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("vault.path"); v != "" {
		cfg.Vault.Path = v
	}
	if v := viper.GetStringSlice("vault.global_folders"); len(v) > 0 {
		cfg.Vault.GlobalFolders = v
	}
	if v := viper.GetString("vault.master_folder"); v != "" {
		cfg.Vault.MasterFolder = v
	}
	if v := viper.GetStringSlice("scan.skip_dirs"); len(v) > 0 {
		cfg.Scan.SkipDirs = v
	}
	if v := viper.GetStringSlice("scan.blocklist"); len(v) > 0 {
		cfg.Scan.Blocklist = v
	}
	if v := viper.GetInt("scan.context_lines"); v > 0 {
		cfg.Scan.ContextLines = v
	}
	if v := viper.GetInt64("scan.max_file_bytes"); v > 0 {
		cfg.Scan.MaxFileBytes = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetFloat64("concurrency.files_per_second"); v > 0 {
		cfg.Concurrency.FilesPerSecond = v
	}
	if v := viper.GetInt("concurrency.burst"); v > 0 {
		cfg.Concurrency.Burst = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetString("output.local_folder"); v != "" {
		cfg.Output.LocalFolder = v
	}
	cfg.Output.Verbose = verbose

	return cfg
}
