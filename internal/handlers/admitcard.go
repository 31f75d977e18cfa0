package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jjenkins/mateng/internal/admitcard"
	"github.com/jjenkins/mateng/internal/model"
	"github.com/jjenkins/mateng/internal/templates"
)

// toastNotifier collects notifications for the response being rendered
type toastNotifier struct {
	toasts []templates.Toast
}

func (n *toastNotifier) Notify(title, message string, severity admitcard.Severity) {
	n.toasts = append(n.toasts, templates.Toast{Title: title, Message: message, Variant: string(severity)})
}

// pagePrinter captures the card handed over by Session.Print
type pagePrinter struct {
	record *model.ApplicationRecord
}

func (p *pagePrinter) Print(record model.ApplicationRecord) {
	p.record = &record
}

// lookupStatus maps a lookup outcome to the HTTP status of a full page response
func lookupStatus(outcome admitcard.Outcome) int {
	switch outcome {
	case admitcard.OutcomeInvalid:
		return fiber.StatusBadRequest
	case admitcard.OutcomeNotFound:
		return fiber.StatusNotFound
	case admitcard.OutcomeTransportError:
		return fiber.StatusBadGateway
	}
	return fiber.StatusOK
}

func AdmitCardFormHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, fiber.StatusOK, templates.AdmitCardPage(templates.AdmitCardView{}))
	}
}

func AdmitCardLookupHandler(fetcher admitcard.Fetcher, recorder admitcard.Recorder, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		formNo := c.FormValue("form_no")

		notifier := &toastNotifier{}
		session := admitcard.NewSession(fetcher, notifier, nil, recorder, logger)
		outcome := session.PerformLookup(c.UserContext(), formNo)

		view := templates.AdmitCardView{
			FormNumber: strings.TrimSpace(formNo),
			State:      session.State(),
			Toasts:     notifier.toasts,
		}

		// htmx only swaps 2xx responses
		if isHTMX(c) {
			return render(c, fiber.StatusOK, templates.AdmitCardResult(view))
		}

		return render(c, lookupStatus(outcome), templates.AdmitCardPage(view))
	}
}

func AdmitCardPrintHandler(fetcher admitcard.Fetcher, recorder admitcard.Recorder, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		formNo := c.Query("form_no")

		notifier := &toastNotifier{}
		printer := &pagePrinter{}
		session := admitcard.NewSession(fetcher, notifier, printer, recorder, logger)
		outcome := session.PerformLookup(c.UserContext(), formNo)
		session.Print()

		if printer.record == nil {
			view := templates.AdmitCardView{
				FormNumber: strings.TrimSpace(formNo),
				State:      session.State(),
				Toasts:     notifier.toasts,
			}
			return render(c, lookupStatus(outcome), templates.AdmitCardPage(view))
		}

		return render(c, fiber.StatusOK, templates.PrintAdmitCard(*printer.record))
	}
}
