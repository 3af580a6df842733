// Package site loads the firm's site content: its name, contact details and
// practice areas. Content is read once at startup and treated as immutable.
package site

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/lawoffice/intake/internal/errors"
)

//go:embed content.toml
var defaultContent []byte

// Firm describes the practice.
type Firm struct {
	Name     string `toml:"name"`
	NameFull string `toml:"name_full"`
	Tagline  string `toml:"tagline"`
}

// Contact holds the firm's public contact details.
type Contact struct {
	Phone   string   `toml:"phone"`
	Email   string   `toml:"email"`
	Address string   `toml:"address"`
	Hours   []string `toml:"hours"`
}

// PracticeArea is one area of practice offered on the contact form.
type PracticeArea struct {
	Title   string `toml:"title"`
	Summary string `toml:"summary"`
}

// Form holds contact form presentation settings.
type Form struct {
	SubmitLabel string `toml:"submit_label"`
}

// Content is the site content.
type Content struct {
	Firm          Firm           `toml:"firm"`
	Contact       Contact        `toml:"contact"`
	PracticeAreas []PracticeArea `toml:"practice_areas"`
	Form          Form           `toml:"form"`
}

// Default returns the embedded content.
func Default() (*Content, error) {
	return Parse(defaultContent)
}

// Load reads content from path, or the embedded content when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read site content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML content.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse site content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the content needed by the contact form.
func (c *Content) Validate() error {
	if strings.TrimSpace(c.Firm.Name) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "site content: firm name is required")
	}
	if strings.TrimSpace(c.Contact.Email) == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "site content: contact email is required")
	}
	seen := make(map[string]struct{}, len(c.PracticeAreas))
	for _, area := range c.PracticeAreas {
		title := strings.TrimSpace(area.Title)
		if title == "" {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "site content: practice area title is required")
		}
		if _, dup := seen[title]; dup {
			return apperrors.Wrapf(apperrors.ErrInvalidInput, "site content: duplicate practice area %q", title)
		}
		seen[title] = struct{}{}
	}
	return nil
}

// PracticeAreaTitles returns the practice area titles in display order.
func (c *Content) PracticeAreaTitles() []string {
	titles := make([]string, len(c.PracticeAreas))
	for i, area := range c.PracticeAreas {
		titles[i] = area.Title
	}
	return titles
}

// SubmitLabel returns the contact form's submit button label.
func (c *Content) SubmitLabel() string {
	return c.Form.SubmitLabel
}
