package scenario

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Provider supplies a content bundle for a genre. The session consumes it
// once at start.
type Provider interface {
	Bundle(ctx context.Context, genre string, keywords []string) (*Bundle, error)
}

// TemplateProvider serves the built-in genre bundles.
type TemplateProvider struct{}

// NewTemplateProvider returns the embedded-template provider.
func NewTemplateProvider() *TemplateProvider {
	return &TemplateProvider{}
}

// Bundle loads and validates the embedded bundle for the genre. Unknown
// genres fall back to fantasy. Player keywords are woven into the title.
func (p *TemplateProvider) Bundle(_ context.Context, genre string, keywords []string) (*Bundle, error) {
	genre = strings.ToLower(strings.TrimSpace(genre))
	data, err := templateFS.ReadFile("templates/" + genre + ".yaml")
	if err != nil {
		genre = "fantasy"
		data, err = templateFS.ReadFile("templates/fantasy.yaml")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}

	if len(keywords) > 0 {
		bundle.Title = fmt.Sprintf("%s: %s", bundle.Title, strings.Join(keywords, " "))
	}
	return &bundle, nil
}

// Genres lists the embedded genre tokens.
func Genres() []string {
	return []string{"fantasy", "scifi", "detective", "horror"}
}
