// Package oracle is the Narrative Oracle client: it renders prompts, calls a
// language model provider and turns replies into game values. Callers treat
// every error as transient and substitute the fallback narration below.
package oracle

//go:generate mockgen -destination=mock/mock_client.go -package=oraclemock github.com/KirkDiggler/horror-bot/internal/clients/oracle Client

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"text/template"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/horror-bot/internal/entities"
	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const tracerName = "github.com/KirkDiggler/horror-bot/internal/clients/oracle"

// Fixed narration used when the oracle cannot answer
const (
	FallbackSceneSummary      = "The silence thickens. Something in the dark is listening."
	FallbackActionDescription = "Your mind blanks for a moment. Nothing seems to happen."
	FallbackViolationNotice   = "An uneasy feeling crawls down your spine, as if you broke something you cannot see."
)

// FallbackEncounterText names the others a player ran into
func FallbackEncounterText(others []string) string {
	return fmt.Sprintf("You run into %s... something feels wrong.", strings.Join(others, ", "))
}

//go:embed prompts/*.tmpl
var promptFS embed.FS

var (
	fenceTag   = regexp.MustCompile(`^[A-Za-z]*\s*$`)
	listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
)

var prompts = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(promptFS, "prompts/*.tmpl"),
)

// Client is the Narrative Oracle
type Client interface {
	// GenerateSceneSummary writes a short scene from keywords
	GenerateSceneSummary(ctx context.Context, keywords []string) (string, error)

	// ProcessAction interprets a free-form action into a structured outcome
	ProcessAction(ctx context.Context, input *ProcessActionInput) (*entities.ActionOutcome, error)

	// GenerateEncounterText narrates players meeting at a location
	GenerateEncounterText(ctx context.Context, input *EncounterInput) (string, error)

	// CheckRuleViolation judges an action against the hidden rules
	CheckRuleViolation(ctx context.Context, input *RuleCheckInput) (*RuleVerdict, error)

	// GenerateRules invents dark rules for a scenario
	GenerateRules(ctx context.Context, scenario string) ([]string, error)
}

// ProcessActionInput carries the per-player context of an action
type ProcessActionInput struct {
	ActionText   string
	Scenario     string
	LocationName string
	Player       *entities.Player
	Exits        []*entities.Location
	History      []entities.ConversationEntry
}

// EncounterInput describes a meeting
type EncounterInput struct {
	Scenario          string
	PlayerName        string
	ActionDescription string
	Others            []string
}

// RuleCheckInput is an action to judge
type RuleCheckInput struct {
	Rules             []string
	ActionText        string
	ActionDescription string
}

// RuleVerdict is the oracle's judgement
type RuleVerdict struct {
	Violated bool
	Rule     string
	Reason   string
}

// Config holds the client dependencies
type Config struct {
	Provider Provider
	Tracer   trace.Tracer
}

// Validate checks the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	return vb.Build()
}

type client struct {
	provider Provider
	tracer   trace.Tracer
}

var _ Client = (*client)(nil)

// New creates an oracle client on top of a provider
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &client{provider: cfg.Provider, tracer: tracer}, nil
}

func (c *client) GenerateSceneSummary(ctx context.Context, keywords []string) (string, error) {
	system, err := render("scene_summary.tmpl", struct{ Keywords []string }{keywords})
	if err != nil {
		return "", err
	}

	reply, err := c.complete(ctx, "scene_summary", &Request{
		System:      system,
		Messages:    []Message{{Role: entities.RoleUser, Content: "Describe the scene."}},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	return requireText(reply)
}

func (c *client) ProcessAction(ctx context.Context, input *ProcessActionInput) (*entities.ActionOutcome, error) {
	if input == nil || input.Player == nil {
		return nil, errors.InvalidArgument("input with player is required")
	}
	if strings.TrimSpace(input.ActionText) == "" {
		return nil, errors.InvalidArgument("action text is required")
	}

	p := input.Player
	system, err := render("process_action.tmpl", map[string]any{
		"Scenario":     input.Scenario,
		"LocationName": input.LocationName,
		"LocationID":   p.LocationID,
		"HP":           p.HP,
		"Sanity":       p.Sanity,
		"Agility":      p.Agility,
		"Accuracy":     p.Accuracy,
		"Inventory":    p.Inventory,
		"Exits":        input.Exits,
	})
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(input.History)+1)
	for _, entry := range input.History {
		messages = append(messages, Message{Role: entry.Role, Content: entry.Content})
	}
	messages = append(messages, Message{Role: entities.RoleUser, Content: input.ActionText})

	reply, err := c.complete(ctx, "process_action", &Request{
		System:      system,
		Messages:    messages,
		JSON:        true,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, err
	}

	return ParseActionOutcome(reply)
}

func (c *client) GenerateEncounterText(ctx context.Context, input *EncounterInput) (string, error) {
	if input == nil || len(input.Others) == 0 {
		return "", errors.InvalidArgument("encounter needs other players")
	}

	system, err := render("encounter.tmpl", input)
	if err != nil {
		return "", err
	}

	reply, err := c.complete(ctx, "encounter", &Request{
		System:      system,
		Messages:    []Message{{Role: entities.RoleUser, Content: "Describe the meeting."}},
		Temperature: 0.9,
	})
	if err != nil {
		return "", err
	}

	return requireText(reply)
}

func (c *client) CheckRuleViolation(ctx context.Context, input *RuleCheckInput) (*RuleVerdict, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Rules) == 0 {
		return &RuleVerdict{}, nil
	}

	system, err := render("rule_check.tmpl", input)
	if err != nil {
		return nil, err
	}

	reply, err := c.complete(ctx, "rule_check", &Request{
		System:      system,
		Messages:    []Message{{Role: entities.RoleUser, Content: "Judge the action."}},
		JSON:        true,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	return ParseRuleVerdict(reply)
}

func (c *client) GenerateRules(ctx context.Context, scenario string) ([]string, error) {
	if strings.TrimSpace(scenario) == "" {
		return nil, errors.InvalidArgument("scenario is required")
	}

	system, err := render("dark_rules.tmpl", struct{ Scenario string }{scenario})
	if err != nil {
		return nil, err
	}

	reply, err := c.complete(ctx, "dark_rules", &Request{
		System:      system,
		Messages:    []Message{{Role: entities.RoleUser, Content: "Write the rules."}},
		Temperature: 0.8,
	})
	if err != nil {
		return nil, err
	}

	rules := ParseRuleLines(reply)
	if len(rules) == 0 {
		return nil, errors.Unavailable("oracle returned no rules")
	}

	return rules, nil
}

func (c *client) complete(ctx context.Context, operation string, req *Request) (string, error) {
	ctx, span := c.tracer.Start(ctx, "oracle."+operation,
		trace.WithAttributes(
			attribute.String("oracle.provider", c.provider.Name()),
			attribute.Int("oracle.messages", len(req.Messages)),
		))
	defer span.End()

	reply, err := c.provider.Complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		slog.WarnContext(ctx, "oracle completion failed",
			"operation", operation,
			"provider", c.provider.Name(),
			"error", err)
		return "", err
	}

	span.SetAttributes(attribute.Int("oracle.reply_length", len(reply)))
	return reply, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "failed to render prompt %s", name)
	}
	return strings.TrimSpace(buf.String()), nil
}

func requireText(reply string) (string, error) {
	text := strings.TrimSpace(reply)
	if text == "" {
		return "", errors.Unavailable("oracle returned an empty reply")
	}
	return text, nil
}

type actionReply struct {
	Success         *bool    `json:"success"`
	Description     *string  `json:"description"`
	HPChange        *int     `json:"hp_change"`
	SanityChange    *int     `json:"sanity_change"`
	NewLocationID   *string  `json:"new_location_id"`
	DiscoveredItems []string `json:"discovered_items"`
}

// ParseActionOutcome decodes an action reply. The success, description and
// both delta fields must be present; a missing location means "same". Deltas
// are bounded to the stat range.
func ParseActionOutcome(reply string) (*entities.ActionOutcome, error) {
	var decoded actionReply
	if err := json.Unmarshal([]byte(stripFences(reply)), &decoded); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "oracle reply is not a valid action outcome")
	}

	vb := errors.NewValidationBuilder()
	if decoded.Success == nil {
		vb.RequiredField("success")
	}
	if decoded.Description == nil || strings.TrimSpace(*decoded.Description) == "" {
		vb.RequiredField("description")
	}
	if decoded.HPChange == nil {
		vb.RequiredField("hp_change")
	}
	if decoded.SanityChange == nil {
		vb.RequiredField("sanity_change")
	}
	if err := vb.Build(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "oracle reply is missing fields")
	}

	outcome := &entities.ActionOutcome{
		Success:         *decoded.Success,
		Description:     strings.TrimSpace(*decoded.Description),
		HPDelta:         entities.BoundDelta(*decoded.HPChange),
		SanityDelta:     entities.BoundDelta(*decoded.SanityChange),
		NewLocationID:   entities.SameLocation,
		DiscoveredItems: []string{},
	}
	if decoded.NewLocationID != nil && strings.TrimSpace(*decoded.NewLocationID) != "" {
		outcome.NewLocationID = strings.TrimSpace(*decoded.NewLocationID)
	}
	for _, item := range decoded.DiscoveredItems {
		if item = strings.TrimSpace(item); item != "" {
			outcome.DiscoveredItems = append(outcome.DiscoveredItems, item)
		}
	}

	return outcome, nil
}

type verdictReply struct {
	Violated     *bool  `json:"violated"`
	RuleViolated string `json:"rule_violated"`
	Reason       string `json:"reason"`
}

// ParseRuleVerdict decodes a rule check reply; "violated" is required
func ParseRuleVerdict(reply string) (*RuleVerdict, error) {
	var decoded verdictReply
	if err := json.Unmarshal([]byte(stripFences(reply)), &decoded); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "oracle reply is not a valid verdict")
	}
	if decoded.Violated == nil {
		return nil, errors.Unavailable("oracle verdict is missing violated")
	}

	return &RuleVerdict{
		Violated: *decoded.Violated,
		Rule:     strings.TrimSpace(decoded.RuleViolated),
		Reason:   strings.TrimSpace(decoded.Reason),
	}, nil
}

// ParseRuleLines splits a rules reply into one rule per line, dropping list
// markers and blank lines
func ParseRuleLines(reply string) []string {
	var rules []string
	for _, line := range strings.Split(stripFences(reply), "\n") {
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line != "" {
			rules = append(rules, line)
		}
	}
	return rules
}

func stripFences(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && fenceTag.MatchString(s[:nl]) {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
