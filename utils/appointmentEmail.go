package utils

import (
	"fmt"
	"time"

	"CarePoint/config"

	"gopkg.in/gomail.v2"
)

// AppointmentEmailData carries everything rendered into a booking
// confirmation email.
type AppointmentEmailData struct {
	PatientName string
	DoctorName  string
	Specialty   string
	StartTime   time.Time
	Clinic      config.ClinicConfig
}

// BuildAppointmentEmail renders the plain-text and HTML bodies for a
// booking confirmation.
func BuildAppointmentEmail(data AppointmentEmailData) (plain string, html string) {
	date := data.StartTime.Format("Monday, 02 January 2006")
	clock := data.StartTime.Format("03:04 PM")

	plain = fmt.Sprintf(
		"Dear %s,\n\nYour appointment with Dr. %s (%s) is confirmed for %s at %s.\n\nLocation: %s\nQuestions? Call us at %s.\n\n%s",
		data.PatientName, data.DoctorName, data.Specialty, date, clock,
		data.Clinic.Location, data.Clinic.ContactNumber, data.Clinic.Name,
	)

	html = `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Appointment Confirmed</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.detail {
				font-weight: bold;
				color: #007bff;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Appointment Confirmed</h1>
			<p>Dear ` + data.PatientName + `,</p>
			<p>Your appointment with <span class="detail">Dr. ` + data.DoctorName + `</span> (` + data.Specialty + `) is confirmed for:</p>
			<p class="detail">` + date + ` at ` + clock + `</p>
			<p>Location: ` + data.Clinic.Location + `</p>
			<p>If you cannot attend, please cancel in advance so the slot can be offered to another patient.</p>
			<p>` + data.Clinic.Name + ` &middot; ` + data.Clinic.ContactNumber + `</p>
		</div>
	</body>
	</html>
	`
	return plain, html
}

// SendAppointmentEmail sends a booking confirmation to the patient. Callers
// dispatch this out-of-band; a send failure never affects the booking.
func SendAppointmentEmail(smtp config.SMTPConfig, to string, data AppointmentEmailData) error {
	plain, html := BuildAppointmentEmail(data)

	m := gomail.NewMessage()
	m.SetHeader("From", smtp.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment Confirmation - "+data.Clinic.Name)
	m.SetBody("text/plain", plain)
	m.AddAlternative("text/html", html)

	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Pass)
	return d.DialAndSend(m)
}
