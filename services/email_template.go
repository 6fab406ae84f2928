package services

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"registration-service/models"
)

const (
	emailSubject = "Registration Confirmed - Class 12 Physics Mock Test | Aakansh Physics Academy"

	examDate       = "28th September 2025"
	onsiteExamTime = "11:30 AM - 2:30 PM"
	remoteExamTime = "12:00 PM - 3:00 PM"

	supportAddress = "support@aakansphysics.com"
)

var onsiteInstructions = []string{
	"Please arrive at the exam center 30 minutes before the scheduled time",
	"Admit Card will be sent to you 48 hours before the Exam date",
	"Bring a valid ID proof (Aadhaar, School ID, etc.) and the Admit card on Exam day",
	"Use of electronic devices (phones, smartwatches) is strictly prohibited",
	"Only pen/pencil and eraser are allowed inside the exam hall",
	"Calculator is not allowed",
	"Rough sheets will be provided at the exam center",
	"Results will be declared within 2 weeks",
}

var remoteInstructions = []string{
	"Join the exam 15 minutes before the scheduled time using the exam link",
	"Exam link and instructions will be sent to you 2 hours before the Exam date",
	"Ensure stable internet connection",
	"Use a laptop/desktop with webcam and microphone for proctoring",
	"Keep a valid ID proof ready for verification during the exam",
	"Calculator is not allowed - use only pen/paper for calculations",
	"Ensure quiet environment without any disturbances",
	"Results will be declared within 2 weeks",
}

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Registration Confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #1e3a8a; color: white; padding: 30px; text-align: center;">
        <h1 style="margin: 0;">Aakansh Physics Academy</h1>
        <p style="margin: 10px 0 0 0;">Transforming Potential into Achievement</p>
    </div>
    <div style="background: #f8f9fa; padding: 30px;">
        <h2 style="color: #059669;">&#10003; Registration Confirmed!</h2>
        <p>Dear {{.FullName}},</p>
        <p>Your registration for the <strong>Class 12 Physics Mock Test</strong> has been successfully confirmed.</p>
        <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
            <tr><td><strong>Registration ID:</strong></td><td>{{.PaymentID}}</td></tr>
            <tr><td><strong>Student Name:</strong></td><td>{{.FullName}}</td></tr>
            <tr><td><strong>Email:</strong></td><td>{{.Email}}</td></tr>
            <tr><td><strong>Mobile:</strong></td><td>{{.Phone}}</td></tr>
            <tr><td><strong>School:</strong></td><td>{{.School}}</td></tr>
            <tr><td><strong>Stream:</strong></td><td>{{.Stream}}</td></tr>
            <tr><td><strong>Exam Mode:</strong></td><td>{{.ExamModeText}}</td></tr>
            <tr><td><strong>Amount Paid:</strong></td><td>&#8377;{{.Amount}}</td></tr>
        </table>
        <div style="background: #dbeafe; padding: 20px; margin: 20px 0;">
            <h3 style="margin-top: 0; color: #1e40af;">Exam Details</h3>
            <p><strong>Date:</strong> {{.ExamDate}}</p>
            <p><strong>Time:</strong> {{.ExamTime}}</p>
            <p><strong>Duration:</strong> 3 Hours</p>
            <p><strong>Total Marks:</strong> 70 Marks</p>
            <p><strong>Mode:</strong> {{.ExamModeText}}</p>
        </div>
        <div style="background: #fef3c7; padding: 20px; margin: 20px 0;">
            <h3 style="margin-top: 0; color: #d97706;">Important Instructions</h3>
            <ul>
{{range .Instructions}}                <li>{{.}}</li>
{{end}}            </ul>
        </div>
        <p>If you have any queries, please contact us at {{.Support}}</p>
    </div>
    <div style="text-align: center; margin-top: 30px; color: #6b7280; font-size: 14px;">
        <p>&copy; 2025 Aakansh Physics Academy. All rights reserved.</p>
    </div>
</body>
</html>
`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation_text").Parse(`Registration Confirmed - Class 12 Physics Mock Test

Dear {{.FullName}},

Your registration has been confirmed.

Registration ID: {{.PaymentID}}
Amount Paid: Rs. {{.Amount}}
Exam Date: {{.ExamDate}}
Exam Time: {{.ExamTime}}
Mode: {{.ExamModeText}}

Contact: {{.Support}}

Best wishes!
Aakansh Physics Academy
`))

// ConfirmationEmail is the rendered subject/HTML/text triple.
type ConfirmationEmail struct {
	Subject string
	HTML    string
	Text    string
}

type confirmationData struct {
	FullName     string
	PaymentID    string
	Email        string
	Phone        string
	School       string
	Stream       string
	Amount       int
	ExamDate     string
	ExamTime     string
	ExamModeText string
	Instructions []string
	Support      string
}

// BuildConfirmation renders the confirmation triple. The exam mode
// selects the timing copy and instruction list.
func BuildConfirmation(rec *models.Registration) (*ConfirmationEmail, error) {
	data := confirmationData{
		FullName:     rec.FullName,
		PaymentID:    rec.PaymentID,
		Email:        rec.Email,
		Phone:        rec.Phone,
		School:       rec.School,
		Stream:       strings.ToUpper(rec.Stream),
		Amount:       rec.Amount,
		ExamDate:     examDate,
		Support:      supportAddress,
		ExamTime:     remoteExamTime,
		ExamModeText: "Remote (From Home)",
		Instructions: remoteInstructions,
	}
	if rec.ExamMode == models.ExamModeOnsite {
		data.ExamTime = onsiteExamTime
		data.ExamModeText = "Onsite (At Center)"
		data.Instructions = onsiteInstructions
	}

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("confirmation html render failed: %w", err)
	}
	var text bytes.Buffer
	if err := confirmationText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("confirmation text render failed: %w", err)
	}

	return &ConfirmationEmail{
		Subject: emailSubject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
