package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lypt0x/openai-go/internal/config"
	"github.com/lypt0x/openai-go/internal/logger"
	"github.com/lypt0x/openai-go/pkg/openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newClient builds the API client from configuration.
func newClient(cfg *config.Config, log *zap.Logger) (*openai.Client, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("no API key: use --api-key, OPENAI_API_KEY or openai.api_key in the config file")
	}

	return openai.New(cfg.OpenAI.APIKey,
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithUserAgent(cfg.OpenAI.UserAgent),
		openai.WithIdleConnTimeout(cfg.OpenAI.IdleTimeout),
		openai.WithHTTP2(cfg.OpenAI.HTTP2Enabled()),
		openai.WithTimeout(cfg.OpenAI.Timeout),
		openai.WithLogger(log.Named("openai")),
	), nil
}

// runEndpoint sends one payload and prints the reply as indented JSON.
func runEndpoint(cmd *cobra.Command, engine string, endpoint openai.Endpoint) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	resp, err := client.Create(cmd.Context(), engine, endpoint)
	if err != nil {
		fields := []zap.Field{
			zap.String("command", cmd.Name()),
			zap.String("engine", engine),
			zap.String("kind", openai.KindOf(err).String()),
			zap.Error(err),
		}
		if code, ok := openai.StatusCode(err); ok {
			fields = append(fields, zap.Int("status", code))
		}
		log.Error("Request failed", fields...)
		return fmt.Errorf("%s: %w", cmd.Name(), err)
	}

	log.Debug("Request successful", zap.String("command", cmd.Name()), zap.String("id", resp.ID))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// parsePairs splits "left|right" flag values into pairs. The last '|'
// separates the two halves.
func parsePairs(values []string) ([][2]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	pairs := make([][2]string, 0, len(values))
	for _, v := range values {
		i := strings.LastIndex(v, "|")
		if i < 0 {
			return nil, fmt.Errorf("invalid example %q: want \"text|label\"", v)
		}
		pairs = append(pairs, [2]string{v[:i], v[i+1:]})
	}
	return pairs, nil
}

func parseModel(name string) (openai.Model, error) {
	switch m := openai.Model(strings.ToLower(strings.TrimSpace(name))); m {
	case openai.ModelAda, openai.ModelBabbage, openai.ModelCurie, openai.ModelDavinci:
		return m, nil
	default:
		return "", fmt.Errorf("unknown model %q: want ada, babbage, curie or davinci", name)
	}
}
