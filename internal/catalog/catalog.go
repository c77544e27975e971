// Package catalog provides the built-in scenarios and player backgrounds
package catalog

import (
	_ "embed"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/horror-bot/internal/errors"
)

//go:embed data/scenarios.yaml
var scenariosYAML []byte

//go:embed data/backgrounds.yaml
var backgroundsYAML []byte

// Scenario is a playable setting
type Scenario struct {
	ID          string   `yaml:"id"`
	Greeting    string   `yaml:"greeting"`
	MinFloors   int      `yaml:"min_floors"`
	MaxFloors   int      `yaml:"max_floors"`
	Rooms       []string `yaml:"rooms"`
	Objectives  []string `yaml:"objectives"`
	Rules       []string `yaml:"rules"`
	HiddenRules []string `yaml:"hidden_rules"`
}

// Name returns the display name derived from the ID
func (s *Scenario) Name() string {
	return DisplayName(s.ID)
}

// Stats are a background's base stats
type Stats struct {
	HP       int `yaml:"hp"`
	Sanity   int `yaml:"sanity"`
	Agility  int `yaml:"agility"`
	Accuracy int `yaml:"accuracy"`
}

// Background is a character profile assigned at join time
type Background struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Stats       Stats  `yaml:"stats"`
}

// Catalog indexes scenarios and backgrounds
type Catalog struct {
	scenarios   map[string]*Scenario
	backgrounds []*Background
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	return Parse(scenariosYAML, backgroundsYAML)
}

// Parse builds a catalog from YAML documents
func Parse(scenarios, backgrounds []byte) (*Catalog, error) {
	var list []*Scenario
	if err := yaml.Unmarshal(scenarios, &list); err != nil {
		return nil, errors.Wrap(err, "failed to parse scenarios")
	}

	c := &Catalog{scenarios: make(map[string]*Scenario, len(list))}
	for _, s := range list {
		if s.ID == "" {
			return nil, errors.InvalidArgument("scenario without id")
		}
		if s.MinFloors < 1 {
			s.MinFloors = 1
		}
		if s.MaxFloors < s.MinFloors {
			s.MaxFloors = s.MinFloors
		}
		c.scenarios[s.ID] = s
	}

	if err := yaml.Unmarshal(backgrounds, &c.backgrounds); err != nil {
		return nil, errors.Wrap(err, "failed to parse backgrounds")
	}
	if len(c.backgrounds) == 0 {
		c.backgrounds = []*Background{DefaultBackground()}
	}

	return c, nil
}

// Scenario returns a scenario by ID
func (c *Catalog) Scenario(id string) (*Scenario, error) {
	s, ok := c.scenarios[id]
	if !ok {
		return nil, errors.NotFound("unknown scenario").WithMeta("scenario_id", id)
	}
	return s, nil
}

// ScenarioIDs lists every scenario ID in sorted order
func (c *Catalog) ScenarioIDs() []string {
	ids := make([]string, 0, len(c.scenarios))
	for id := range c.scenarios {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Objectives returns a scenario's objectives, or nil for an unknown scenario
func (c *Catalog) Objectives(id string) []string {
	s, ok := c.scenarios[id]
	if !ok {
		return nil
	}
	return append([]string(nil), s.Objectives...)
}

// Backgrounds lists the backgrounds in file order
func (c *Catalog) Backgrounds() []*Background {
	return c.backgrounds
}

// DefaultBackground is used when no backgrounds are configured
func DefaultBackground() *Background {
	return &Background{
		ID:          "survivor",
		Name:        "Survivor",
		Description: "An ordinary student who happened to be in the wrong place.",
		Stats:       Stats{HP: 100, Sanity: 100, Agility: 50, Accuracy: 50},
	}
}

// DisplayName turns an identifier like ghost_ship into "Ghost Ship"
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}
