package telegram

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"letterboxd-channel-bot/internal/domain"
	"letterboxd-channel-bot/internal/infra/metrics"
)

const (
	// Лимит Telegram на подпись к фото.
	captionLimit = 1024

	publishAttempts    = 3
	retryMargin        = time.Second
	fallbackRetryDelay = 10 * time.Second
)

var retryAfterPattern = regexp.MustCompile(`(?i)retry after (\d+)`)

// sender покрывает используемую часть tgbotapi.BotAPI.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Publisher отправляет уведомление с постером и подписью в канал.
type Publisher struct {
	api      sender
	chatID   int64
	log      zerolog.Logger
	attempts int
	wait     func(ctx context.Context, d time.Duration) error
}

var _ domain.Publisher = (*Publisher)(nil)

// NewPublisher создаёт паблишер для канала.
func NewPublisher(api *tgbotapi.BotAPI, chatID int64, logger zerolog.Logger) *Publisher {
	return newPublisher(api, chatID, logger)
}

func newPublisher(api sender, chatID int64, logger zerolog.Logger) *Publisher {
	return &Publisher{
		api:      api,
		chatID:   chatID,
		log:      logger,
		attempts: publishAttempts,
		wait:     sleepCtx,
	}
}

// Publish доставляет сообщение, повторяя отправку при сбоях. При
// рейт-лимите пауза берётся из ответа Telegram с запасом в секунду.
func (p *Publisher) Publish(ctx context.Context, imageURL, caption string) error {
	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		start := time.Now()
		err := p.send(imageURL, caption)
		metrics.ObserveNetworkRequest("telegram", "publish", "channel", start, err)
		if err == nil {
			return nil
		}
		lastErr = err
		metrics.PublishErrors.Inc()
		if attempt == p.attempts {
			break
		}
		delay := retryDelay(err)
		p.log.Warn().Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("отправка не удалась, повторим")
		if werr := p.wait(ctx, delay); werr != nil {
			return werr
		}
	}
	return fmt.Errorf("отправка уведомления: %w", lastErr)
}

// send отправляет фото с подписью либо, без постера, обычный текст.
// Подпись длиннее лимита уходит хвостом отдельными сообщениями.
func (p *Publisher) send(imageURL, caption string) error {
	parts := Split(caption, captionLimit)

	if imageURL == "" {
		if len(parts) == 0 {
			return errors.New("нечего отправлять: пустая подпись без постера")
		}
		return p.sendMessages(parts)
	}

	photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FileURL(imageURL))
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	rest := parts
	if len(parts) > 0 {
		photo.Caption = parts[0]
		rest = parts[1:]
	}
	if _, err := p.api.Send(photo); err != nil {
		return err
	}
	return p.sendMessages(rest)
}

func (p *Publisher) sendMessages(parts []string) error {
	for _, part := range parts {
		msg := tgbotapi.NewMessage(p.chatID, part)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		if _, err := p.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// retryDelay выбирает паузу перед повтором: retry-after из ответа либо из
// текста ошибки плюс секунда запаса, иначе фиксированные 10 секунд.
func retryDelay(err error) time.Duration {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
		return time.Duration(tgErr.RetryAfter)*time.Second + retryMargin
	}
	if m := retryAfterPattern.FindStringSubmatch(err.Error()); len(m) == 2 {
		if secs, convErr := strconv.Atoi(m[1]); convErr == nil {
			return time.Duration(secs)*time.Second + retryMargin
		}
	}
	return fallbackRetryDelay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
