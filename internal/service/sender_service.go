package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"github.com/OlgaOrl/massage-booking/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendBookingConfirmation sends the confirmation email and SMS for a
// completed booking. Both are best-effort: failures are logged, never
// returned to the caller.
func (s *SenderService) SendBookingConfirmation(booking entities.BookingDetail) {
	emailData := entities.BookingEmailData{
		ClientName:    booking.ClientName,
		Reference:     booking.Reference,
		ServiceName:   booking.ServiceName,
		Duration:      booking.Duration,
		Price:         booking.Price,
		DateFormatted: formatBookingDate(booking.Date),
		TimeSlot:      booking.TimeSlot,
		CurrentYear:   time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your massage booking is confirmed - Reference: %s", booking.Reference)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking is confirmed.\n\n"+
			"Booking Details:\n"+
			"Reference: %s\n"+
			"Service: %s (%d minutes, €%.2f)\n"+
			"Date: %s\n"+
			"Time: %s\n\n"+
			"Thank you for booking with us.\n\n"+
			"Massage Booking Team",
		emailData.ClientName, emailData.Reference, emailData.ServiceName,
		emailData.Duration, emailData.Price, emailData.DateFormatted, emailData.TimeSlot,
	)

	htmlBody := plainTextBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: failed to parse email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Printf("ALERT: failed to render email template for booking %s: %v", emailData.Reference, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Printf("ALERT (async): confirmation email for booking %s failed: %v", emailData.Reference, err)
		}
	}(booking.Email, booking.ClientName, emailSubject, plainTextBody, htmlBody)

	s.sendBookingSMS(booking)
}

func (s *SenderService) sendBookingSMS(booking entities.BookingDetail) {
	smsMessage := fmt.Sprintf("Massage Booking: your booking %s is confirmed!\n%s at %s.\nMore details in your email.",
		booking.Reference, formatBookingDate(booking.Date), booking.TimeSlot)

	go func(toNumber, body, reference string) {
		if err := SendSMS(toNumber, body); err != nil {
			log.Printf("ALERT (async): confirmation SMS for booking %s to %s failed: %v", reference, toNumber, err)
		}
	}(booking.Phone, smsMessage, booking.Reference)
}

// formatBookingDate renders "2026-09-15" as "Tuesday, September 15, 2026",
// falling back to the raw string when it does not parse.
func formatBookingDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return parsed.Format("Monday, January 2, 2006")
}
