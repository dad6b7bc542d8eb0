package scenario

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/generate_bundle.txt
var generateBundlePrompt string

// AIProvider generates content bundles with a generative model instead of
// the embedded templates. The output goes through the same YAML decode and
// validation as the built-in bundles, so a malformed generation surfaces as
// ErrConfiguration rather than a broken world.
type AIProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewAIProvider dials the Gemini API.
func NewAIProvider(ctx context.Context, apiKey string) (*AIProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &AIProvider{
		client: client,
		model:  client.GenerativeModel("gemini-2.5-flash"),
	}, nil
}

// Close releases the API client.
func (p *AIProvider) Close() {
	p.client.Close()
}

// Bundle prompts the model for a genre bundle in YAML and validates it.
func (p *AIProvider) Bundle(ctx context.Context, genre string, keywords []string) (*Bundle, error) {
	tmpl, err := template.New("generate_bundle").Parse(generateBundlePrompt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	data := struct {
		Genre    string
		Keywords string
	}{
		Genre:    genre,
		Keywords: strings.Join(keywords, ", "),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content returned from Gemini")
	}
	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from Gemini")
	}

	cleanYAML := strings.TrimSpace(string(text))
	cleanYAML = strings.TrimPrefix(cleanYAML, "```yaml")
	cleanYAML = strings.TrimPrefix(cleanYAML, "```")
	cleanYAML = strings.TrimSuffix(cleanYAML, "```")

	var bundle Bundle
	if err := yaml.Unmarshal([]byte(cleanYAML), &bundle); err != nil {
		return nil, fmt.Errorf("%w: failed to parse generated YAML: %v", ErrConfiguration, err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}
