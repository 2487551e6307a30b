package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockitout/drywallbackend/dto"
)

func sampleRequest() *dto.CreateQuoteRequestDTO {
	return &dto.CreateQuoteRequestDTO{
		Name:     "Jordan Mason",
		Phone:    "3196102050",
		Email:    "jordan@example.com",
		Service:  "drywall-repair",
		Location: "Raymond, IA",
		Message:  "Water damage on the ceiling of two bedrooms.",
	}
}

func TestServiceDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "Not specified"},
		{"installation", "Installation"},
		{"drywall-repair", "Drywall repair"},
		{"texture-and-finishing", "Texture and finishing"},
		{"commercial", "Commercial"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ServiceDisplay(tt.in), "display of %q", tt.in)
	}
}

func TestComposeBusinessEmail(t *testing.T) {
	urls := []string{
		"https://storage.googleapis.com/b/quotes/2026/08/30/1-a-wall.jpg",
		"https://storage.googleapis.com/b/quotes/2026/08/30/2-b-ceiling.jpg",
	}
	now := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

	subject, html, err := ComposeBusinessEmail(sampleRequest(), urls, now)
	require.NoError(t, err)

	assert.Equal(t, "New Quote Request from Jordan Mason - Drywall repair", subject)
	assert.Contains(t, html, "Jordan Mason")
	assert.Contains(t, html, `tel:3196102050`)
	assert.Contains(t, html, `mailto:jordan@example.com`)
	assert.Contains(t, html, "Drywall repair")
	assert.Contains(t, html, "Raymond, IA")
	assert.Contains(t, html, "Water damage on the ceiling")
	for _, u := range urls {
		assert.Contains(t, html, u)
	}
	assert.Contains(t, html, "Action Required")
	assert.Contains(t, html, "Submitted on Sunday, August 30, 2026")
}

func TestComposeBusinessEmail_NoEmailNoMailto(t *testing.T) {
	req := sampleRequest()
	req.Email = ""

	_, html, err := ComposeBusinessEmail(req, nil, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, html, "mailto:")
	assert.NotContains(t, html, "Project Photos")
}

func TestComposeBusinessEmail_EscapesUserInput(t *testing.T) {
	req := sampleRequest()
	req.Message = `<script>alert("xss")</script> plus a real description`

	_, html, err := ComposeBusinessEmail(req, nil, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestComposeCustomerEmail(t *testing.T) {
	urls := []string{"https://storage.googleapis.com/b/quotes/2026/08/30/1-a-wall.jpg"}

	subject, html, err := ComposeCustomerEmail(sampleRequest(), urls, time.Now())
	require.NoError(t, err)

	assert.Contains(t, subject, "We've Received Your Quote Request")
	assert.Contains(t, html, "Hi Jordan Mason")
	assert.Contains(t, html, "Drywall repair")
	assert.Contains(t, html, "Raymond, IA")
	assert.Contains(t, html, "What Happens Next?")
	assert.Contains(t, html, urls[0])
}
