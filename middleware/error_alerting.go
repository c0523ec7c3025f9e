package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/slack-go/slack"

	"pantherasmp/core/log"
)

const (
	defaultAlertCooldown = 10 * time.Minute
	alertSendTimeout     = 10 * time.Second
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
}

// ErrorAlerter recovers panics in handlers and reports failures to a Slack webhook.
// The same error text is alerted at most once per cooldown window.
type ErrorAlerter struct {
	config        SlackAlertConfig
	alertedErrors map[string]time.Time
	mutex         sync.Mutex
	alertCooldown time.Duration
	wg            sync.WaitGroup
}

func NewErrorAlerter(config SlackAlertConfig) *ErrorAlerter {
	return &ErrorAlerter{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: defaultAlertCooldown,
	}
}

func (m *ErrorAlerter) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer m.recoverAndAlert(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

// WrapEventHandler guards one world event handler. Errors are alerted, panics recovered.
func (m *ErrorAlerter) WrapEventHandler(eventName string, handler func() error) func() {
	return func() {
		defer m.recoverAndAlert(fmt.Sprintf("Event handler: %s", eventName))

		if err := handler(); err != nil {
			log.Error("❌ Event handler %s failed: %v", eventName, err)
			m.AlertOnError(err, fmt.Sprintf("Event handler: %s", eventName))
		}
	}
}

func (m *ErrorAlerter) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() error {
		defer m.recoverAndAlert(fmt.Sprintf("Background task: %s", taskName))

		if err := task(); err != nil {
			m.AlertOnError(err, fmt.Sprintf("Background task: %s", taskName))
			return err
		}
		return nil
	}
}

func (m *ErrorAlerter) AlertOnError(err error, where string) {
	errorMsg := fmt.Sprintf("%s: %v", where, err)
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists && time.Since(lastAlert) < m.alertCooldown {
		return
	}

	m.dispatch(errorMsg, where)
	m.alertedErrors[hash] = time.Now()
}

// Wait blocks until in-flight alerts have been sent.
func (m *ErrorAlerter) Wait() {
	m.wg.Wait()
}

func (m *ErrorAlerter) recoverAndAlert(where string) {
	if r := recover(); r != nil {
		errorMsg := fmt.Sprintf("%s: PANIC - %v", where, r)
		log.Error("❌ %s", errorMsg)
		m.dispatch(errorMsg, where+" (PANIC)")
	}
}

func (m *ErrorAlerter) dispatch(errorMsg, where string) {
	if m.config.WebhookURL == "" {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.sendSlackAlert(errorMsg, where)
	}()
}

func (m *ErrorAlerter) sendSlackAlert(errorMsg, where string) {
	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, fmt.Sprintf("🚨 %s[%s] Error Alert", envPrefix, m.config.AppName), true, false),
	)
	details := slack.NewSectionBlock(nil, []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", where), false, false),
	}, nil)
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", errorMsg), false, false),
		nil, nil,
	)

	msg := &slack.WebhookMessage{
		Text:   errorMsg,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{header, details, body}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), alertSendTimeout)
	defer cancel()
	if err := slack.PostWebhookContext(ctx, m.config.WebhookURL, msg); err != nil {
		log.Error("❌ Failed to send Slack alert: %v", err)
	}
}
