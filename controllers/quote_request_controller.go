package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rockitout/drywallbackend/config"
	"github.com/rockitout/drywallbackend/dto"
	"github.com/rockitout/drywallbackend/mailer"
	"github.com/rockitout/drywallbackend/middleware"
	"github.com/rockitout/drywallbackend/models"
	"github.com/rockitout/drywallbackend/storage"
	"github.com/rockitout/drywallbackend/utils"
	"github.com/rockitout/drywallbackend/validation"
)

// QuoteRequestDeps are the collaborators the quote handler needs. All of
// them are injected at construction time; the handler never reads the
// environment.
type QuoteRequestDeps struct {
	Config  *config.Config
	Storage storage.Uploader
	Mailer  mailer.Sender
}

// ====== CreateQuoteRequest (public — no auth) ================================================================
// POST /quote-requests
// JSON body: CreateQuoteRequestDTO (images as {name, mimeType, data} with
// data a base64 data URI).
//
// Validation is the only hard-fail path. Image decode/upload failures and
// email delivery failures degrade the result (fewer gallery images, no
// confirmation) but the submission is still acknowledged with a 200.
func CreateQuoteRequest(deps QuoteRequestDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateQuoteRequestDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		body.Email = strings.TrimSpace(body.Email)
		body.Service = strings.TrimSpace(body.Service)
		body.Location = strings.TrimSpace(body.Location)
		body.Message = strings.TrimSpace(body.Message)

		// Authoritative re-validation. Client-side checks are never trusted.
		if ferr := validation.Validate(&body); ferr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ferr.Message})
			return
		}

		log.Printf("Received quote request from %q (%d images)", body.Name, len(body.Images))

		result := models.DispatchResult{ImagesReceived: len(body.Images)}

		processed := processImages(ctx, deps.Storage, body.Images)
		result.ImagesUploaded = len(processed)

		imageURLs := make([]string, 0, len(processed))
		attachments := make([]mailer.Attachment, 0, len(processed))
		for _, img := range processed {
			imageURLs = append(imageURLs, img.PublicURL)
			attachments = append(attachments, mailer.Attachment{
				Filename:    img.FileName,
				ContentType: img.MimeType,
				Content:     img.Bytes,
			})
		}

		now := time.Now().UTC()

		subject, html, err := mailer.ComposeBusinessEmail(&body, imageURLs, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send quote request", "details": err.Error()})
			return
		}
		result.BusinessEmailID, result.BusinessEmailErr = deps.Mailer.Send(ctx, &mailer.Message{
			From:        deps.Config.EmailFrom,
			To:          []string{deps.Config.BusinessEmail},
			Subject:     subject,
			HTML:        html,
			ReplyTo:     body.Email,
			Attachments: attachments,
		})
		if result.BusinessEmailErr != nil {
			log.Printf("business email failed for %q: %v", body.Name, result.BusinessEmailErr)
			middleware.QuoteEmailsSent.WithLabelValues("business", "failed").Inc()
		} else {
			middleware.QuoteEmailsSent.WithLabelValues("business", "sent").Inc()
		}

		// Customer confirmation only when an address was given AND the
		// server-side flag allows it. Its failure is likewise swallowed.
		if body.Email != "" && deps.Config.SendCustomerConfirmation {
			result.CustomerAttempted = true
			subject, html, err := mailer.ComposeCustomerEmail(&body, imageURLs, now)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send quote request", "details": err.Error()})
				return
			}
			result.CustomerEmailID, result.CustomerEmailErr = deps.Mailer.Send(ctx, &mailer.Message{
				From:    deps.Config.EmailFrom,
				To:      []string{body.Email},
				Subject: subject,
				HTML:    html,
			})
			if result.CustomerEmailErr != nil {
				log.Printf("customer confirmation failed for %q: %v", body.Email, result.CustomerEmailErr)
				middleware.QuoteEmailsSent.WithLabelValues("customer", "failed").Inc()
			} else {
				middleware.QuoteEmailsSent.WithLabelValues("customer", "sent").Inc()
			}
		}

		logDispatch(&body, &result)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quote request sent successfully"})
	}
}

// processImages decodes and uploads each attachment in order. A malformed
// payload or a failed upload skips that image and never aborts the batch.
func processImages(ctx context.Context, uploader storage.Uploader, images []dto.QuoteImageDTO) []models.ProcessedImage {
	processed := make([]models.ProcessedImage, 0, len(images))

	for i, img := range images {
		mimeType, data, err := utils.DecodeDataURI(img.Data)
		if err != nil {
			log.Printf("skipping image %d (%s): bad payload: %v", i+1, img.Name, err)
			middleware.QuoteImagesProcessed.WithLabelValues("skipped_decode").Inc()
			continue
		}
		if mimeType == "" {
			mimeType = img.MimeType
		}

		objectName := storage.ObjectName(img.Name, time.Now())
		publicURL, err := uploader.Upload(ctx, objectName, data, mimeType)
		if err != nil {
			log.Printf("skipping image %d (%s): upload failed: %v", i+1, img.Name, err)
			middleware.QuoteImagesProcessed.WithLabelValues("skipped_upload").Inc()
			continue
		}
		middleware.QuoteImagesProcessed.WithLabelValues("uploaded").Inc()

		processed = append(processed, models.ProcessedImage{
			FileName:   img.Name,
			MimeType:   mimeType,
			Bytes:      data,
			ObjectName: objectName,
			PublicURL:  publicURL,
		})
	}

	return processed
}

func logDispatch(req *dto.CreateQuoteRequestDTO, r *models.DispatchResult) {
	business := "sent id=" + r.BusinessEmailID
	if r.BusinessEmailErr != nil {
		business = "FAILED"
	}
	customer := "not attempted"
	if r.CustomerAttempted {
		customer = "sent id=" + r.CustomerEmailID
		if r.CustomerEmailErr != nil {
			customer = "FAILED"
		}
	}
	log.Printf("quote request from %q dispatched: images %d/%d uploaded, business email %s, customer email %s",
		req.Name, r.ImagesUploaded, r.ImagesReceived, business, customer)
}
