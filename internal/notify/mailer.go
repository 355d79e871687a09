package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/demanddesk/api/internal/core/ports"
)

// statusLabels maps wire status values to the labels used in notification mail.
var statusLabels = map[string]string{
	"en-attente": "en attente",
	"en-cours":   "en cours",
	"terminee":   "terminée",
	"annulee":    "annulée",
}

// Mailer sends status-change notifications to demand owners over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a Mailer. Returns nil when host is empty, which disables
// email notifications entirely.
func NewMailer(host string, port int, user, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// SendStatusChanged emails the owner about a status change on their demand.
func (m *Mailer) SendStatusChanged(event ports.DemandEvent) error {
	label := statusLabels[string(event.ToStatus)]
	if label == "" {
		label = string(event.ToStatus)
	}

	body := fmt.Sprintf("<p>Votre demande « %s » est maintenant <strong>%s</strong>.</p>", event.Title, label)
	if event.Note != "" {
		body += fmt.Sprintf("<p>Réponse de l'équipe : %s</p>", event.Note)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", event.OwnerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Mise à jour de votre demande : %s", event.Title))
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
