// Package content loads the static portfolio copy: who the page is about,
// the seed skills, the project catalog and the education/experience tables.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/projects"
)

//go:embed default.yaml
var defaultYAML []byte

const deadlineLayout = "2006-01-02"

type Portfolio struct {
	Name       string          `yaml:"name"`
	Summary    string          `yaml:"summary"`
	Skills     []string        `yaml:"skills"`
	Projects   []ProjectEntry  `yaml:"projects"`
	Nav        []NavItem       `yaml:"nav"`
	Education  []EducationRow  `yaml:"education"`
	Experience []ExperienceRow `yaml:"experience"`
	Contact    Contact         `yaml:"contact"`
}

type ProjectEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Deadline    string `yaml:"deadline"`
	ImageSrc    string `yaml:"image_src"`
	ImageAlt    string `yaml:"image_alt"`
}

type NavItem struct {
	Text   string `yaml:"text"`
	Target string `yaml:"target"`
}

type EducationRow struct {
	Institution string `yaml:"institution"`
	Major       string `yaml:"major"`
	Duration    string `yaml:"duration"`
}

func (r EducationRow) Cells() []string {
	return []string{r.Institution, r.Major, r.Duration}
}

type ExperienceRow struct {
	Company  string `yaml:"company"`
	Position string `yaml:"position"`
	Duration string `yaml:"duration"`
}

func (r ExperienceRow) Cells() []string {
	return []string{r.Company, r.Position, r.Duration}
}

type Contact struct {
	Email  string `yaml:"email"`
	GitHub string `yaml:"github"`
}

// Greeting is the headline shown above the summary.
func (p *Portfolio) Greeting() string {
	return fmt.Sprintf("Hello, my name is %s! Welcome to my portfolio!", p.Name)
}

// ProjectList converts the YAML entries to catalog records.
func (p *Portfolio) ProjectList() ([]projects.Project, error) {
	out := make([]projects.Project, 0, len(p.Projects))
	for _, e := range p.Projects {
		deadline, err := time.Parse(deadlineLayout, strings.TrimSpace(e.Deadline))
		if err != nil {
			return nil, fmt.Errorf("project %q: invalid deadline %q: %w", e.Title, e.Deadline, err)
		}
		out = append(out, projects.Project{
			Title:       e.Title,
			Description: e.Description,
			Deadline:    deadline,
			ImageSrc:    e.ImageSrc,
			ImageAlt:    e.ImageAlt,
		})
	}
	return out, nil
}

// Load reads the portfolio from path, or the embedded default when path is
// empty.
func Load(path string) (*Portfolio, error) {
	data := defaultYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read content: %w", err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("content: name is required")
	}
	if _, err := p.ProjectList(); err != nil {
		return nil, err
	}
	return &p, nil
}
