// internal/config/config.go

// Package config loads and validates the herald configuration: the posting
// schedule, the destinations, and the rule pools. All malformed-rule
// detection happens here, so the engine downstream only ever sees
// well-formed rules.
package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"herald/internal/astro"
	"herald/internal/calendar"
	"herald/internal/rules"
)

// Selection policies.
const (
	PolicyFirstMatch = "first-match"
	PolicyCollectAll = "collect-all"
)

// Config is the validated process configuration. It is built once at startup
// and treated as immutable for the process lifetime.
type Config struct {
	Schedule string
	Timezone string
	Policy   string
	Location *time.Location

	Channels  []Channel
	Defaults  []rules.Rule
	Overrides []rules.Rule
}

// Channel is one delivery destination with its own rule pool.
type Channel struct {
	Name       string
	WebhookURL string
	Rules      []rules.Rule
}

// ChannelByName returns the named channel's configuration.
func (c *Config) ChannelByName(name string) (*Channel, bool) {
	for i := range c.Channels {
		if c.Channels[i].Name == name {
			return &c.Channels[i], true
		}
	}
	return nil, false
}

type rawConfig struct {
	Schedule      string       `mapstructure:"schedule"`
	Timezone      string       `mapstructure:"timezone"`
	Policy        string       `mapstructure:"policy"`
	Channels      []rawChannel `mapstructure:"channels"`
	Messages      []rawRule    `mapstructure:"messages"`
	ExtraMessages []rawRule    `mapstructure:"extra_messages"`
}

type rawChannel struct {
	Name       string    `mapstructure:"name"`
	WebhookURL string    `mapstructure:"webhook_url"`
	Messages   []rawRule `mapstructure:"messages"`
}

type rawRule struct {
	Message      string           `mapstructure:"message"`
	Date         string           `mapstructure:"date"`
	DateStart    string           `mapstructure:"date_start"`
	DateEnd      string           `mapstructure:"date_end"`
	Month        string           `mapstructure:"month"`
	DayOfWeek    string           `mapstructure:"day_of_week"`
	WeekOfMonth  string           `mapstructure:"week_of_month"`
	After        *rawAfter        `mapstructure:"after"`
	Replacements []rawReplacement `mapstructure:"replacements"`
}

type rawAfter struct {
	Type           string `mapstructure:"type"`
	Value          string `mapstructure:"value"`
	DayOfWeek      string `mapstructure:"day_of_week"`
	WeekOfInterval string `mapstructure:"week_of_interval"`
}

type rawReplacement struct {
	Token string `mapstructure:"token"`
	Type  string `mapstructure:"type"`
	Value string `mapstructure:"value"`
}

// Load reads the configuration file at path, applies HERALD_* environment
// overrides, and converts the raw rule definitions into validated typed
// rules.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("HERALD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return build(&raw)
}

func build(raw *rawConfig) (*Config, error) {
	cfg := &Config{
		Schedule: raw.Schedule,
		Timezone: raw.Timezone,
		Policy:   raw.Policy,
	}

	if cfg.Schedule == "" {
		return nil, fmt.Errorf("schedule is required")
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", cfg.Schedule, err)
	}

	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	switch cfg.Policy {
	case "":
		cfg.Policy = PolicyFirstMatch
	case PolicyFirstMatch, PolicyCollectAll:
	default:
		return nil, fmt.Errorf("unknown selection policy %q", cfg.Policy)
	}

	if cfg.Defaults, err = buildRules(raw.Messages); err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}
	if cfg.Overrides, err = buildRules(raw.ExtraMessages); err != nil {
		return nil, fmt.Errorf("extra_messages: %w", err)
	}

	for i, ch := range raw.Channels {
		if ch.Name == "" {
			return nil, fmt.Errorf("channel %d: name is required", i)
		}
		if ch.WebhookURL == "" {
			return nil, fmt.Errorf("channel %q: webhook_url is required", ch.Name)
		}
		chRules, err := buildRules(ch.Messages)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", ch.Name, err)
		}
		cfg.Channels = append(cfg.Channels, Channel{
			Name:       ch.Name,
			WebhookURL: ch.WebhookURL,
			Rules:      chRules,
		})
	}

	return cfg, nil
}

func buildRules(raws []rawRule) ([]rules.Rule, error) {
	built := make([]rules.Rule, 0, len(raws))
	for i, raw := range raws {
		r, err := buildRule(&raw)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		built = append(built, r)
	}
	return built, nil
}

func buildRule(raw *rawRule) (rules.Rule, error) {
	var r rules.Rule

	if raw.Message == "" {
		return r, fmt.Errorf("message is required")
	}
	r.Template = raw.Message

	var err error
	if r.Date, err = parseDate(raw.Date, "date"); err != nil {
		return r, err
	}
	if r.DateStart, err = parseDate(raw.DateStart, "date_start"); err != nil {
		return r, err
	}
	if r.DateEnd, err = parseDate(raw.DateEnd, "date_end"); err != nil {
		return r, err
	}
	if (r.DateStart == nil) != (r.DateEnd == nil) {
		return r, fmt.Errorf("date_start and date_end must be set together")
	}

	if raw.Month != "" {
		m, err := calendar.ParseMonth(raw.Month)
		if err != nil {
			return r, err
		}
		r.Month = &m
	}
	if raw.DayOfWeek != "" {
		d, err := calendar.ParseWeekday(raw.DayOfWeek)
		if err != nil {
			return r, err
		}
		r.DayOfWeek = &d
	}
	if raw.WeekOfMonth != "" {
		w, err := calendar.ParseWeekOfMonth(raw.WeekOfMonth)
		if err != nil {
			return r, err
		}
		r.WeekOfMonth = &w
	}
	set := 0
	for _, present := range []bool{r.Month != nil, r.DayOfWeek != nil, r.WeekOfMonth != nil} {
		if present {
			set++
		}
	}
	if set != 0 && set != 3 {
		return r, fmt.Errorf("month, day_of_week and week_of_month must be set together")
	}

	if raw.After != nil {
		if r.DateStart == nil {
			return r, fmt.Errorf("after requires date_start and date_end")
		}
		after, err := buildAfter(raw.After)
		if err != nil {
			return r, err
		}
		r.After = after
	}

	for i, rep := range raw.Replacements {
		built, err := buildReplacement(&rep)
		if err != nil {
			return r, fmt.Errorf("replacement %d: %w", i, err)
		}
		r.Replacements = append(r.Replacements, built)
	}

	return r, nil
}

func buildAfter(raw *rawAfter) (*rules.After, error) {
	if raw.Type != rules.AfterMoonPhase {
		return nil, fmt.Errorf("unknown after type %q", raw.Type)
	}
	if _, err := astro.ParsePhase(raw.Value); err != nil {
		return nil, err
	}
	day, err := calendar.ParseWeekday(raw.DayOfWeek)
	if err != nil {
		return nil, err
	}
	week, err := calendar.ParseWeekOfMonth(raw.WeekOfInterval)
	if err != nil {
		return nil, err
	}
	return &rules.After{
		Kind:           raw.Type,
		Phase:          raw.Value,
		DayOfWeek:      day,
		WeekOfInterval: week,
	}, nil
}

func buildReplacement(raw *rawReplacement) (rules.Replacement, error) {
	switch raw.Type {
	case rules.ReplaceSubstitute, rules.ReplaceYearsSinceStart, rules.ReplaceMonthsSinceStart:
	default:
		return rules.Replacement{}, fmt.Errorf("unknown replacement type %q", raw.Type)
	}
	if raw.Token == "" {
		return rules.Replacement{}, fmt.Errorf("token is required")
	}
	return rules.Replacement{Token: raw.Token, Kind: raw.Type, Value: raw.Value}, nil
}

func parseDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	return &t, nil
}
