package learning

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/dmitrijs2005/warrantyguard/internal/logging"
)

const (
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/"
	DefaultTextModel   = "gemini-2.5-flash"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
	DefaultVoice       = "Kore"
	DefaultTimeout     = 30 * time.Second
)

// FunFact is a short spoken fact about one item. AudioBase64 holds raw
// 24 kHz 16-bit mono PCM and is empty when speech could not be produced.
type FunFact struct {
	Text        string
	AudioBase64 string
}

type GeneratorOptions struct {
	APIKey      string
	BaseURL     string
	TextModel   string
	SpeechModel string
	Voice       string
	Timeout     time.Duration
}

func (o *GeneratorOptions) withDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.TextModel == "" {
		o.TextModel = DefaultTextModel
	}
	if o.SpeechModel == "" {
		o.SpeechModel = DefaultSpeechModel
	}
	if o.Voice == "" {
		o.Voice = DefaultVoice
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
}

// APIKeyFromEnv returns GEMINI_API_KEY, falling back to API_KEY.
func APIKeyFromEnv() string {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("API_KEY")
}

// Generator asks Gemini for a fun fact and then for a spoken version of it.
type Generator struct {
	opts   GeneratorOptions
	client *genai.Client
	logger logging.Logger
}

// NewGenerator builds the Gemini client. Without an API key no client is
// created and Generate always returns nil.
func NewGenerator(ctx context.Context, opts GeneratorOptions, logger logging.Logger) (*Generator, error) {
	opts.withDefaults()
	g := &Generator{opts: opts, logger: logger}
	if opts.APIKey == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: opts.Timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// Enabled reports whether an API key is configured.
func (g *Generator) Enabled() bool {
	return g.client != nil
}

// FallbackText is shown when no fact could be generated.
func FallbackText(label string) string {
	return fmt.Sprintf("Belajar tentang %s itu menyenangkan!", label)
}

func prompt(label string) string {
	return fmt.Sprintf("Ceritakan fakta seru, singkat, dan mendidik untuk anak umur 5 tahun tentang %q. "+
		"Gunakan bahasa Indonesia yang ceria, mudah dipahami, dan penuh semangat. "+
		"Maksimal 2 kalimat.", label)
}

// Generate returns nil, nil when no API key is configured. A failed text
// request is an error; a failed speech request only drops the audio.
func (g *Generator) Generate(ctx context.Context, label string) (*FunFact, error) {
	if !g.Enabled() {
		g.logger.Warn(ctx, "API key is missing, skipping fun fact generation")
		return nil, nil
	}

	text, err := g.generateText(ctx, label)
	if err != nil {
		return nil, err
	}
	if text == "" {
		text = FallbackText(label)
	}

	fact := &FunFact{Text: text}

	audio, err := g.generateSpeech(ctx, text)
	if err != nil {
		g.logger.Warn(ctx, "speech generation failed", "label", label, "error", err)
		return fact, nil
	}
	fact.AudioBase64 = audio
	return fact, nil
}

func (g *Generator) generateText(ctx context.Context, label string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.TextModel, genai.Text(prompt(label)), nil)
	if err != nil {
		return "", fmt.Errorf("fun fact: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

func (g *Generator) generateSpeech(ctx context.Context, text string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.SpeechModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.opts.Voice},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0].InlineData == nil {
		return "", errors.New("speech: response has no audio")
	}
	return base64.StdEncoding.EncodeToString(resp.Candidates[0].Content.Parts[0].InlineData.Data), nil
}
