package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/schedsync/syncclient"
)

var (
	version = "dev"

	cfgFile    string
	profile    string
	endpoint   string
	dataDir    string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "schedsync-cli",
	Version: version,
	Short:   "Client for the schedsync gateway",
	Long: `schedsync-cli - keep the daily scheduler's data directory in sync

Single-document commands:
  - list:     list documents held by the gateway
  - upload:   upload one scheduler JSON file
  - download: download one document

Whole-directory commands:
  - push: upload every scheduler file present in the data directory
  - pull: download every document; tasks.json keeps local completions
  - sync: push, then pull`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.schedsync/config.yaml, env: SCHEDSYNC_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "profile name (env: SCHEDSYNC_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "gateway URL (default: http://localhost:5708, env: SCHEDSYNC_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "scheduler data directory (default: ~/.schedsync/data, env: SCHEDSYNC_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			_ = getFormatter().FormatError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// errReported marks a failure whose details were already written by a formatter.
var errReported = errors.New("reported")

// getConfigPath resolves the profile file: flag, then env, then the default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := syncclient.ConfigPathFromEnv(); p != "" {
		return p
	}
	return syncclient.DefaultConfigPath()
}

// buildConfig merges config from the profile file, env vars, and flags (flags take precedence).
func buildConfig() (*syncclient.Config, error) {
	var configs []*syncclient.Config

	explicitFile := cfgFile != "" || syncclient.ConfigPathFromEnv() != ""
	profileName := profile
	if profileName == "" {
		profileName = syncclient.ProfileFromEnv()
	}

	if configPath := getConfigPath(); configPath != "" {
		file, err := syncclient.LoadConfigFile(configPath)
		switch {
		case err == nil:
			p, profileErr := file.GetProfile(profileName)
			if profileErr != nil && (profileName != "" || !errors.Is(profileErr, syncclient.ErrNoProfiles)) {
				return nil, profileErr
			}
			configs = append(configs, syncclient.ConfigFromProfile(p))
		case explicitFile || profileName != "":
			// only the implicit default path may be missing
			return nil, err
		}
	}

	configs = append(configs,
		syncclient.ConfigFromEnv(),
		&syncclient.Config{Endpoint: endpoint, DataDir: dataDir},
	)

	return syncclient.MergeConfig(configs...).WithDefaults(), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() syncclient.Formatter {
	return syncclient.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*syncclient.Client, *syncclient.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := syncclient.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

// handleError writes err with the active formatter and marks it reported.
func handleError(w io.Writer, err error) error {
	_ = getFormatter().FormatError(w, err)
	return errors.Join(errReported, err)
}
