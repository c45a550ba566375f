// Package learncmd is the cobra command tree of the learning browser.
package learncmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/warrantyguard/internal/buildinfo"
	"github.com/dmitrijs2005/warrantyguard/internal/filex"
	"github.com/dmitrijs2005/warrantyguard/internal/learning"
	"github.com/dmitrijs2005/warrantyguard/internal/logging"
)

// FactGenerator is the part of learning.Generator the commands use.
type FactGenerator interface {
	Generate(ctx context.Context, label string) (*learning.FunFact, error)
}

type options struct {
	envFile    string
	logLevel   string
	model      string
	ttsModel   string
	voice      string
	audioPath  string
	apiBaseURL string
}

// NewGeneratorFunc builds the generator once flags and .env are loaded.
type NewGeneratorFunc func(ctx context.Context, opts learning.GeneratorOptions, logger logging.Logger) (FactGenerator, error)

func defaultGenerator(ctx context.Context, opts learning.GeneratorOptions, logger logging.Logger) (FactGenerator, error) {
	return learning.NewGenerator(ctx, opts, logger)
}

// NewRootCmd builds the command tree. newGen may be nil to use Gemini.
func NewRootCmd(catalog *learning.Catalog, newGen NewGeneratorFunc) *cobra.Command {
	if newGen == nil {
		newGen = defaultGenerator
	}
	opts := &options{}

	root := &cobra.Command{
		Use:   "learn",
		Short: "Browse the children's learning cards",
		Long: `learn lists the learning categories and their cards, and can ask
Gemini for a short fun fact (with speech) about any card.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.ErrOrStderr())
			// A missing .env file is fine; variables may come from the environment.
			_ = godotenv.Load(opts.envFile)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")
	root.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "warn", "log level")

	root.AddCommand(
		newCategoriesCmd(catalog),
		newItemsCmd(catalog),
		newFactCmd(catalog, opts, newGen),
	)
	return root
}

func newCategoriesCmd(catalog *learning.Catalog) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range catalog.Categories() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Icon, c.ID, c.Title, c.Description)
			}
			return tw.Flush()
		},
	}
}

func newItemsCmd(catalog *learning.Catalog) *cobra.Command {
	return &cobra.Command{
		Use:   "items <category>",
		Short: "List the cards of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := catalog.Items(learning.CategoryID(args[0]))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", it.ID, it.Emoji, it.Label, it.Description)
			}
			return tw.Flush()
		},
	}
}

func newFactCmd(catalog *learning.Catalog, opts *options, newGen NewGeneratorFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fact <item-id>",
		Short: "Tell a fun fact about a card",
		Long: `fact asks Gemini for a two-sentence fun fact in Indonesian. The API key
is read from GEMINI_API_KEY or API_KEY. Without a key, or when the request
fails, a friendly default sentence is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, ok := catalog.Item(args[0])
			if !ok {
				return fmt.Errorf("unknown item %q", args[0])
			}

			ctx := cmd.Context()
			logger := logging.NewTextLogger(cmd.ErrOrStderr(), opts.logLevel)
			gen, err := newGen(ctx, learning.GeneratorOptions{
				APIKey:      learning.APIKeyFromEnv(),
				BaseURL:     opts.apiBaseURL,
				TextModel:   opts.model,
				SpeechModel: opts.ttsModel,
				Voice:       opts.voice,
			}, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", item.Emoji, item.Label)

			fact, err := gen.Generate(ctx, item.Label)
			if err != nil {
				logger.Warn(ctx, "fun fact generation failed", "item", item.ID, "error", err)
			}
			if fact == nil {
				fmt.Fprintln(out, learning.FallbackText(item.Label))
				return nil
			}
			fmt.Fprintln(out, fact.Text)

			if opts.audioPath == "" {
				return nil
			}
			if fact.AudioBase64 == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "no audio was produced")
				return nil
			}
			pcm, err := base64.StdEncoding.DecodeString(fact.AudioBase64)
			if err != nil {
				return fmt.Errorf("decode audio: %w", err)
			}
			if err := filex.WriteFileAtomic(opts.audioPath, pcm, 0o644); err != nil {
				return fmt.Errorf("write audio: %w", err)
			}
			fmt.Fprintf(out, "audio (24 kHz 16-bit mono PCM) written to %s\n", opts.audioPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.audioPath, "audio", "o", "", "write the spoken fact as raw PCM to this file")
	cmd.Flags().StringVar(&opts.model, "model", learning.DefaultTextModel, "text model")
	cmd.Flags().StringVar(&opts.ttsModel, "tts-model", learning.DefaultSpeechModel, "speech model")
	cmd.Flags().StringVar(&opts.voice, "voice", learning.DefaultVoice, "prebuilt voice name")
	cmd.Flags().StringVar(&opts.apiBaseURL, "api-url", learning.DefaultBaseURL, "Gemini API base URL")
	return cmd
}
