package cmd

import (
	"fmt"

	"github.com/lypt0x/openai-go/internal/config"
	"github.com/lypt0x/openai-go/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newConfigureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Write the API key and base URL to the config file",
		Long: `Store the values given with --api-key and --base-url (or taken from
OPENAI_API_KEY and OPENAI_BASE_URL) in the config file, creating it with
defaults when it does not exist yet.`,
		Args: cobra.NoArgs,
		RunE: runConfigure,
	}
}

// runConfigure 保存API配置
func runConfigure(cmd *cobra.Command, args []string) error {
	// checked first so a failed run leaves no config file behind
	if viper.GetString("openai.api_key") == "" {
		return fmt.Errorf("no API key given: pass --api-key or set OPENAI_API_KEY")
	}

	cfg, err := config.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	if err := config.SaveConfig(cfg); err != nil {
		log.Error("Failed to save config", zap.Error(err))
		return err
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		path = "./config.yaml"
	}
	log.Debug("Config saved",
		zap.String("path", path),
		zap.String("key_prefix", maskAPIKey(cfg.OpenAI.APIKey)),
		zap.String("base_url", cfg.OpenAI.BaseURL),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key %s to %s\n", maskAPIKey(cfg.OpenAI.APIKey), path)
	return nil
}
