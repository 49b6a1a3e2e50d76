// Package notify dispatches price-drop alerts to their sinks. The engine
// produces structured alert payloads; localization happens here, using the
// stored language preference.
package notify

import (
	"context"
	"log"

	"github.com/raushankrgupta/price-watcher/i18n"
	"github.com/raushankrgupta/price-watcher/models"
	"github.com/raushankrgupta/price-watcher/utils"
)

// Notifier delivers one alert.
type Notifier interface {
	Notify(ctx context.Context, alert models.PriceAlert) error
}

// LanguageFunc resolves the user's language preference at dispatch time.
type LanguageFunc func(ctx context.Context) string

// LogNotifier writes alerts to the process log. Always installed.
type LogNotifier struct {
	Lang LanguageFunc
}

func (n *LogNotifier) Notify(ctx context.Context, alert models.PriceAlert) error {
	title, body := i18n.Notification(n.lang(ctx), alert)
	log.Printf("[Alert] %s\n%s", title, body)
	return nil
}

func (n *LogNotifier) lang(ctx context.Context) string {
	if n.Lang == nil {
		return i18n.DefaultLanguage
	}
	return n.Lang(ctx)
}

// EmailNotifier sends alerts through SendGrid.
type EmailNotifier struct {
	Lang   LanguageFunc
	ToName string
	To     string
}

func (n *EmailNotifier) Notify(ctx context.Context, alert models.PriceAlert) error {
	lang := i18n.DefaultLanguage
	if n.Lang != nil {
		lang = n.Lang(ctx)
	}
	title, body := i18n.Notification(lang, alert)
	return utils.SendEmail(n.ToName, n.To, title, body, "")
}

// Fanout delivers to every sink; a failing sink is logged and does not
// block the others.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, alert models.PriceAlert) error {
	for _, n := range f {
		if err := n.Notify(ctx, alert); err != nil {
			log.Printf("Notifier %T failed: %v", n, err)
		}
	}
	return nil
}
