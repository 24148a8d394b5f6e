package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/service"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/Destinytch001/naits-server/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdHandler struct {
	service service.AdService
}

func NewAdHandler(service service.AdService) *AdHandler {
	return &AdHandler{service: service}
}

func (h *AdHandler) Create(c *gin.Context) {
	req := dto.CreateAdRequest{
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		SponsorName:    c.PostForm("sponsor_name"),
		WhatsappNumber: c.PostForm("whatsapp_number"),
		DurationDays:   service.DefaultAdDurationDays,
	}

	if raw := c.PostForm("duration_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.BadRequest("Invalid duration_days"))
			return
		}
		req.DurationDays = days
	}

	logo, err := formImage(c, "sponsor_logo")
	if err != nil {
		response.Error(c, err)
		return
	}
	req.SponsorLogo = logo

	image, err := formImage(c, "ad_image")
	if err != nil {
		response.Error(c, err)
		return
	}
	req.AdImage = image

	ad, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Sponsored ad created successfully",
		"ad_id":   ad.ID.String(),
	})
}

func (h *AdHandler) GetActive(c *gin.Context) {
	ads, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ads": ads})
}

func (h *AdHandler) GetExpired(c *gin.Context) {
	ads, err := h.service.Expired(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "ads": ads})
}

func (h *AdHandler) Extend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid ad ID"})
		return
	}

	if err := h.service.Extend(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ad extended successfully"})
}

func (h *AdHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid ad ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ad deleted successfully"})
}

func formImage(c *gin.Context, field string) (*dto.ImageUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil || fileHeader.Filename == "" {
		return nil, nil
	}

	return openUpload(fileHeader)
}

func openUpload(fileHeader *multipart.FileHeader) (*dto.ImageUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperror.BadRequest("Failed to read uploaded image")
	}

	return &dto.ImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileName:    fileHeader.Filename,
	}, nil
}
