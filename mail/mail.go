// Package mail sends workflow notification emails through SendGrid
package mail

import (
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/crimechain/report-api/models"
	templates "github.com/crimechain/report-api/templates/html"
)

const (
	senderName    = "CrimeChain Reports"
	senderAddress = "no-reply@crimechain.example.com"
)

// Sender delivers a single email. It exists so tests can swap out the
// SendGrid client.
type Sender interface {
	Send(message *sgmail.SGMailV3) error
}

type sendgridSender struct{}

func (sendgridSender) Send(message *sgmail.SGMailV3) error {
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}

// Mailer sends report workflow notifications. Deliveries are best-effort;
// callers must never fail a workflow change on a mail error.
type Mailer struct {
	BaseURL string
	Sender  Sender
}

// NewMailer builds a Mailer backed by the SendGrid API
func NewMailer(baseURL string) *Mailer {
	return &Mailer{BaseURL: baseURL, Sender: sendgridSender{}}
}

// OfficerAssigned notifies an officer that a report is now theirs
func (m *Mailer) OfficerAssigned(officer *models.User, report *models.Report) error {
	if officer.Email == "" {
		zap.S().Debugw("officer has no email, skipping assignment notification", "officerId", officer.ID.Hex())
		return nil
	}

	caseURL := m.BaseURL + "/reports/" + report.ID.Hex()
	subject := "New Case Assignment: " + report.Title
	htmlContent := templates.RenderOfficerAssignedEmail(officer.Name, report.Title, report.ID.Hex(), report.Status, caseURL)
	plainText := "A report has been assigned to you for investigation: " + report.Title + " (" + report.ID.Hex() + ")"

	from := sgmail.NewEmail(senderName, senderAddress)
	to := sgmail.NewEmail(officer.Name, officer.Email)
	message := sgmail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	return m.Sender.Send(message)
}
