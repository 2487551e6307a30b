package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/rockitout/drywallbackend/dto"
)

// ServiceDisplay turns a service label into its display form: first letter
// capitalized, hyphens replaced with spaces. "drywall-repair" becomes
// "Drywall repair". An empty label reads "Not specified".
func ServiceDisplay(service string) string {
	if service == "" {
		return "Not specified"
	}
	runes := []rune(service)
	first := unicode.ToUpper(runes[0])
	rest := strings.ReplaceAll(string(runes[1:]), "-", " ")
	return string(first) + rest
}

type emailData struct {
	Name           string
	Phone          string
	Email          string
	Location       string
	Message        string
	ServiceDisplay string
	ImageURLs      []string
	SubmittedAt    string
}

var businessTmpl = template.Must(template.New("business").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333; border-bottom: 3px solid #4CAF50; padding-bottom: 10px;">
    New Quote Request from {{.Name}}
  </h1>

  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h2 style="color: #555; margin-top: 0;">Contact Information</h2>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>
    {{if .Email}}<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>{{end}}
    <p><strong>Service Needed:</strong> {{.ServiceDisplay}}</p>
    <p><strong>Project Location:</strong> {{.Location}}</p>
  </div>

  <div style="background-color: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
    <h2 style="color: #555; margin-top: 0;">Project Details</h2>
    <p style="white-space: pre-wrap;">{{.Message}}</p>
  </div>

  {{if .ImageURLs}}
  <div style="background-color: #fff; padding: 20px; border: 1px solid #ddd; border-radius: 5px; margin: 20px 0;">
    <h2 style="color: #555; margin-top: 0;">Project Photos</h2>
    {{range .ImageURLs}}
    <div style="margin-bottom: 10px;">
      <img src="{{.}}" alt="Project photo" style="max-width: 100%; border-radius: 5px;" />
    </div>
    {{end}}
  </div>
  {{end}}

  <div style="margin-top: 20px; padding: 15px; background-color: #fffbcc; border-left: 4px solid #ffeb3b; border-radius: 3px;">
    <p style="margin: 0; color: #666;">
      <strong>Action Required:</strong> Please respond to this quote request within 24 hours.
    </p>
  </div>

  <p style="color: #999; font-size: 12px; margin-top: 30px; text-align: center;">
    Submitted on {{.SubmittedAt}}
  </p>
</div>
`))

var customerTmpl = template.Must(template.New("customer").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333; border-bottom: 3px solid #4CAF50; padding-bottom: 10px;">
    Thank You for Your Quote Request!
  </h1>

  <p style="font-size: 16px; line-height: 1.6;">Hi {{.Name}},</p>

  <p style="font-size: 16px; line-height: 1.6;">
    We've received your quote request for <strong>{{.ServiceDisplay}}</strong> in {{.Location}}.
  </p>

  <div style="background-color: #e8f5e9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h2 style="color: #2e7d32; margin-top: 0;">What Happens Next?</h2>
    <ul style="line-height: 1.8;">
      <li>Our team will review your project details</li>
      <li>We'll contact you within 24 hours to discuss your needs</li>
      <li>We'll provide a free, detailed quote for your project</li>
    </ul>
  </div>

  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #555; margin-top: 0;">Your Request Summary:</h3>
    <p><strong>Service:</strong> {{.ServiceDisplay}}</p>
    <p><strong>Location:</strong> {{.Location}}</p>
    <p style="white-space: pre-wrap;"><strong>Details:</strong> {{.Message}}</p>
  </div>

  {{if .ImageURLs}}
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <h3 style="color: #555; margin-top: 0;">Your Photos:</h3>
    {{range .ImageURLs}}
    <div style="margin-bottom: 10px;">
      <img src="{{.}}" alt="Project photo" style="max-width: 100%; border-radius: 5px;" />
    </div>
    {{end}}
  </div>
  {{end}}

  <div style="background-color: #fff3cd; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p style="margin: 0; color: #856404;">
      <strong>Need immediate assistance?</strong> Call us at <a href="tel:3196102050" style="color: #856404;">(319) 610-2050</a>
    </p>
  </div>

  <p style="font-size: 16px; line-height: 1.6;">
    Best regards,<br>
    <strong>The Rock It Out Drywall Team</strong>
  </p>

  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; color: #999; font-size: 14px;">
    <p><strong>Rock It Out Drywall</strong></p>
    <p>6215 Lafayette Rd, Raymond, IA 50667</p>
    <p>Phone: (319) 610-2050</p>
    <p>Monday - Saturday: 7:00 AM - 4:00 PM</p>
  </div>
</div>
`))

func buildData(req *dto.CreateQuoteRequestDTO, imageURLs []string, now time.Time) emailData {
	return emailData{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Location:       req.Location,
		Message:        req.Message,
		ServiceDisplay: ServiceDisplay(req.Service),
		ImageURLs:      imageURLs,
		SubmittedAt:    now.Format("Monday, January 2, 2006 at 3:04 PM"),
	}
}

// ComposeBusinessEmail renders the always-attempted operator notification.
func ComposeBusinessEmail(req *dto.CreateQuoteRequestDTO, imageURLs []string, now time.Time) (subject, html string, err error) {
	data := buildData(req, imageURLs, now)
	var buf bytes.Buffer
	if err := businessTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render business email: %w", err)
	}
	subject = fmt.Sprintf("New Quote Request from %s - %s", req.Name, data.ServiceDisplay)
	return subject, buf.String(), nil
}

// ComposeCustomerEmail renders the flag-gated confirmation. No attachments
// are ever added to this one.
func ComposeCustomerEmail(req *dto.CreateQuoteRequestDTO, imageURLs []string, now time.Time) (subject, html string, err error) {
	data := buildData(req, imageURLs, now)
	var buf bytes.Buffer
	if err := customerTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render customer email: %w", err)
	}
	return "We've Received Your Quote Request - Rock It Out Drywall", buf.String(), nil
}
