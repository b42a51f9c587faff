package services

import (
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/RohitAgrawal7/Journal-Backend/config"
)

// EmailNotifier renders and delivers the two lifecycle emails through the
// SMTP mailer. It holds no per-request state and is safe for concurrent use.
type EmailNotifier struct {
	send func(to []string, subject, html string) error
}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{send: config.SendMail}
}

func (n *EmailNotifier) SendSubmissionConfirmation(to, name, trackingID, title string) error {
	subject := "Your Manuscript Submission Confirmation - UJGSM"
	return n.send([]string{to}, subject, renderSubmissionConfirmation(name, trackingID, title))
}

func (n *EmailNotifier) SendStatusUpdate(to, name, trackingID, title, statusLabel, remarks string) error {
	subject := fmt.Sprintf("Manuscript Status Update: %s - UJGSM", statusLabel)
	return n.send([]string{to}, subject, renderStatusUpdate(name, trackingID, title, statusLabel, remarks))
}

func renderSubmissionConfirmation(name, trackingID, title string) string {
	escapedName := template.HTMLEscapeString(strings.TrimSpace(name))
	escapedTitle := template.HTMLEscapeString(strings.TrimSpace(title))
	escapedTracking := template.HTMLEscapeString(trackingID)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>UJGSM - Submission Confirmation</title>
</head>
<body style="margin:0;padding:0;background-color:#f7fafc;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:650px;margin:0 auto;padding:24px 20px;">
  <div style="background:linear-gradient(135deg,#2d5c7f 0%%,#1e4a6e 100%%);color:#ffffff;padding:24px;border-radius:8px 8px 0 0;text-align:center;">
    <div style="font-size:22px;font-weight:700;">UJGSM</div>
    <div style="font-size:13px;opacity:0.9;">Universal Journal of Gynaecology, Surgery and Medicine</div>
  </div>
  <div style="background-color:#ffffff;border:1px solid #e2e8f0;border-top:none;border-radius:0 0 8px 8px;padding:28px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#2d3748;">Dear %s,</p>
    <p style="margin:0 0 16px 0;font-size:15px;line-height:1.7;color:#2d3748;">Thank you for submitting your manuscript <strong>&ldquo;%s&rdquo;</strong> to UJGSM. Your submission has been received and will be assigned to our editorial team for initial review.</p>
    <p style="margin:0 0 8px 0;font-size:15px;color:#2d3748;">Your tracking ID:</p>
    <p style="margin:0 0 16px 0;"><span style="display:inline-block;background:linear-gradient(135deg,#2d5c7f 0%%,#38b2ac 100%%);color:#ffffff;padding:10px 20px;border-radius:4px;font-weight:700;font-size:18px;letter-spacing:1px;">%s</span></p>
    <p style="margin:0;font-size:14px;line-height:1.7;color:#4a5568;">Please quote this ID in all correspondence. You can follow the progress of your manuscript at any time through the tracking page on our website.</p>
  </div>
</div>
</body>
</html>`, escapedName, escapedTitle, escapedTracking)
}

func renderStatusUpdate(name, trackingID, title, statusLabel, remarks string) string {
	escapedName := template.HTMLEscapeString(strings.TrimSpace(name))
	escapedTitle := template.HTMLEscapeString(strings.TrimSpace(title))
	escapedTracking := template.HTMLEscapeString(trackingID)
	escapedStatus := template.HTMLEscapeString(statusLabel)

	remarksBlock := ""
	if trimmed := strings.TrimSpace(remarks); trimmed != "" {
		escapedRemarks := template.HTMLEscapeString(trimmed)
		escapedRemarks = strings.ReplaceAll(strings.ReplaceAll(escapedRemarks, "\r\n", "\n"), "\r", "\n")
		escapedRemarks = strings.ReplaceAll(escapedRemarks, "\n", "<br />")
		remarksBlock = fmt.Sprintf(`
    <div style="background-color:#f0fff4;border-left:4px solid #38b2ac;padding:16px;margin:16px 0;border-radius:0 4px 4px 0;">
      <p style="margin:0 0 6px 0;font-size:14px;font-weight:600;color:#2d5c7f;">Editorial remarks</p>
      <p style="margin:0;font-size:14px;line-height:1.7;color:#2d3748;word-break:break-word;">%s</p>
    </div>`, escapedRemarks)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>UJGSM - Status Update</title>
</head>
<body style="margin:0;padding:0;background-color:#f7fafc;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:650px;margin:0 auto;padding:24px 20px;">
  <div style="background:linear-gradient(135deg,#2d5c7f 0%%,#1e4a6e 100%%);color:#ffffff;padding:24px;border-radius:8px 8px 0 0;text-align:center;">
    <div style="font-size:22px;font-weight:700;">UJGSM</div>
    <div style="font-size:13px;opacity:0.9;">Universal Journal of Gynaecology, Surgery and Medicine</div>
  </div>
  <div style="background-color:#ffffff;border:1px solid #e2e8f0;border-top:none;border-radius:0 0 8px 8px;padding:28px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#2d3748;">Dear %s,</p>
    <p style="margin:0 0 16px 0;font-size:15px;line-height:1.7;color:#2d3748;">The status of your manuscript <strong>&ldquo;%s&rdquo;</strong> (tracking ID <strong>%s</strong>) has been updated to:</p>
    <p style="margin:0 0 16px 0;"><span style="display:inline-block;background-color:#2d5c7f;color:#ffffff;padding:8px 16px;border-radius:4px;font-weight:700;font-size:16px;">%s</span></p>%s
    <p style="margin:0;font-size:14px;line-height:1.7;color:#4a5568;">You can review the full details on the manuscript tracking page of our website.</p>
  </div>
</div>
</body>
</html>`, escapedName, escapedTitle, escapedTracking, escapedStatus, remarksBlock)
}

// notifySafe runs a notification send and logs a failure without letting it
// reach the caller. Lifecycle outcomes never depend on mail delivery.
func notifySafe(what string, send func() error) {
	if err := send(); err != nil {
		log.Printf("%s email send failed: %v", what, err)
	}
}
