package dto

import (
	"io"
	"strings"
)

// ImageUpload carries one file from a multipart request into the service
// layer without exposing the multipart types there.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	FileName    string
}

// CreateAdRequest is the decoded multipart body of the ad creation endpoint.
type CreateAdRequest struct {
	Title          string
	Description    string
	SponsorName    string
	WhatsappNumber string
	DurationDays   int

	SponsorLogo *ImageUpload
	AdImage     *ImageUpload
}

// Valid reports whether all required text fields are present.
func (r CreateAdRequest) Valid() bool {
	for _, v := range []string{r.Title, r.Description, r.SponsorName, r.WhatsappNumber} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
