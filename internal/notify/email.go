package notify

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a rendered email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends email via unauthenticated SMTP (Mailpit-compatible).
type SMTPSender struct {
	addr     string
	from     string
	fromName string
}

// NewSMTPSender builds a sender for host:port with the given envelope
// sender.
func NewSMTPSender(host, port, from, fromName string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@carebook.local"
	}
	if fromName == "" {
		fromName = "CareBook"
	}
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%s", host, port),
		from:     from,
		fromName: fromName,
	}
}

// Send delivers a single plain-text message.
func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.fromName, s.from, to, subject, body,
	)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

// RenderEmail builds the subject and body for an event. Unknown event
// names are an error so the worker can reject malformed messages.
func RenderEmail(event Event) (subject, body string, err error) {
	name := event.Payload[KeyName]

	switch event.Name {
	case EventAcknowledgement:
		subject = "We've received your appointment request"
		body = fmt.Sprintf(
			"Hi %s,\n\nThank you for reaching out to us. We have received your appointment request and our team will review it shortly.\n\nYou will get another email once a date is confirmed.\n\nWarm regards,\nThe CareBook Team",
			name,
		)
	case EventBooking:
		subject = "Your appointment is booked"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment has been booked for %s.\n\nIf this time does not work for you, reply to this email and we will reschedule.\n\nWarm regards,\nThe CareBook Team",
			name, event.Payload[KeyDate],
		)
	case EventConfirmation:
		subject = "Your appointment is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\nGood news! Your appointment request has been confirmed for %s.\n\nWe look forward to seeing you.\n\nWarm regards,\nThe CareBook Team",
			name, event.Payload[KeyDate],
		)
	case EventReschedule:
		subject = "Your appointment has been rescheduled"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment originally set for %s has been moved to %s.\n\nIf the new time does not work for you, reply to this email.\n\nWarm regards,\nThe CareBook Team",
			name, event.Payload[KeyOldDate], event.Payload[KeyNewDate],
		)
	case EventCancellation:
		subject = "Your appointment has been cancelled"
		body = fmt.Sprintf(
			"Hi %s,\n\nUnfortunately your appointment has been cancelled.\n\nReason: %s\n\nYou are welcome to submit a new request at any time.\n\nWarm regards,\nThe CareBook Team",
			name, event.Payload[KeyReason],
		)
	case EventRejection:
		subject = "Update on your appointment request"
		body = fmt.Sprintf(
			"Hi %s,\n\nWe are sorry, but we could not accommodate your appointment request.\n\nReason: %s\n\nYou are welcome to submit a new request at any time.\n\nWarm regards,\nThe CareBook Team",
			name, event.Payload[KeyReason],
		)
	case EventFollowUp:
		subject = "Thank you for visiting us"
		body = fmt.Sprintf(
			"Hi %s,\n\nThank you for your visit. We hope everything went well.\n\nIf you have any feedback or need a follow-up appointment, just reply to this email.\n\nWarm regards,\nThe CareBook Team",
			name,
		)
	default:
		return "", "", fmt.Errorf("unknown notification event %q", event.Name)
	}
	return subject, body, nil
}
