package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lypt0x/openai-go/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version   string
	BuildTime string
	cfgFile   string
)

var rootCmd = &cobra.Command{
	Use:   "openai",
	Short: "Command line client for the OpenAI text-generation API",
	Long: `openai sends completion, edit, search, classification and answer
requests to the OpenAI API and prints the JSON reply. "openai serve" starts
a local gateway exposing the same endpoints.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// 全局标志
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.String("api-key", "", "API key (default $OPENAI_API_KEY)")
	pf.String("base-url", "", "API base URL (default https://api.openai.com)")
	pf.Duration("timeout", 0, "per-request timeout, 0 for none")
	pf.String("log-level", "", "log level (debug/info/warn/error)")
	pf.String("log-file", "", "log file (default logs/openai.log)")

	// 绑定到viper
	viper.BindPFlag("openai.api_key", pf.Lookup("api-key"))
	viper.BindPFlag("openai.base_url", pf.Lookup("base-url"))
	viper.BindPFlag("openai.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("logging.level", pf.Lookup("log-level"))
	viper.BindPFlag("logging.output", pf.Lookup("log-file"))

	rootCmd.AddCommand(
		newCompleteCmd(),
		newEditCmd(),
		newSearchCmd(),
		newClassifyCmd(),
		newAnswerCmd(),
		newServeCmd(),
		newConfigureCmd(),
	)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./data")
		viper.AddConfigPath("$HOME/.openai-go")
	}

	viper.AutomaticEnv()
	config.BindEnv(viper.GetViper())
	viper.SetDefault("logging.console_output", true)

	if err := viper.ReadInConfig(); err != nil {
		// LoadOrCreate writes the file later, for the commands that need one
		if cfgFile == "" {
			viper.SetConfigFile("./config.yaml")
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
