// internal/bot/bot.go

// Package bot is the posting host: it wakes on the configured schedule,
// asks the selector which message(s) apply to the current date, and posts
// them to every configured channel.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"herald/internal/config"
	"herald/internal/rules"
)

// Poster delivers one rendered message to a destination webhook.
type Poster interface {
	Post(ctx context.Context, url, content string) error
}

// Bot ties the schedule, the selector, and the delivery client together.
type Bot struct {
	cfg      *config.Config
	selector *rules.Selector
	poster   Poster
}

func New(cfg *config.Config, selector *rules.Selector, poster Poster) *Bot {
	return &Bot{cfg: cfg, selector: selector, poster: poster}
}

// Run blocks, posting on the configured cron schedule in the configured
// location, until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	c := cron.New(cron.WithLocation(b.cfg.Location))
	if _, err := c.AddFunc(b.cfg.Schedule, func() { b.tick(ctx) }); err != nil {
		return fmt.Errorf("parse schedule %q: %w", b.cfg.Schedule, err)
	}

	log.Info().
		Str("schedule", b.cfg.Schedule).
		Str("timezone", b.cfg.Timezone).
		Str("policy", b.cfg.Policy).
		Int("channels", len(b.cfg.Channels)).
		Msg("Herald started")

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	log.Info().Msg("Herald stopped")
	return nil
}

// tick runs one posting cycle. Failures are per-channel: a channel whose
// selection or delivery fails is logged and skipped, the others still post.
func (b *Bot) tick(ctx context.Context) {
	now := time.Now().In(b.cfg.Location)
	for i := range b.cfg.Channels {
		ch := &b.cfg.Channels[i]

		messages, err := b.MessagesFor(ch, now)
		if err != nil {
			if errors.Is(err, rules.ErrNoMatchingRule) {
				log.Error().Err(err).Str("channel", ch.Name).Msg("Skipping cycle for channel")
			} else {
				log.Error().Err(err).Str("channel", ch.Name).Msg("Selecting message failed")
			}
			continue
		}

		for _, msg := range messages {
			log.Info().Str("channel", ch.Name).Msg("Posting to channel")
			if err := b.poster.Post(ctx, ch.WebhookURL, msg); err != nil {
				log.Error().Err(err).Str("channel", ch.Name).Msg("Posting to channel failed")
			}
		}
	}
}

// MessagesFor resolves the message(s) for a channel at an instant under the
// configured selection policy. The preview command uses it too.
func (b *Bot) MessagesFor(ch *config.Channel, now time.Time) ([]string, error) {
	if b.cfg.Policy == config.PolicyCollectAll {
		return b.selector.CollectMessages(ch.Rules, now)
	}
	msg, err := b.selector.FindMessage(ch.Rules, now)
	if err != nil {
		return nil, err
	}
	return []string{msg}, nil
}
