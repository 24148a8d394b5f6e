package handler

import (
	"net/http"
	"strings"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/service"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/Destinytch001/naits-server/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WearHandler struct {
	service service.WearService
}

func NewWearHandler(service service.WearService) *WearHandler {
	return &WearHandler{service: service}
}

func (h *WearHandler) GetAll(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": items})
}

func (h *WearHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID format"})
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": item})
}

func (h *WearHandler) Create(c *gin.Context) {
	in, image, err := decodeWearInput(c)
	if err != nil {
		response.ItemError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), in, image)
	if err != nil {
		response.ItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Product created successfully",
		"data":    item,
	})
}

func (h *WearHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID format"})
		return
	}

	in, image, err := decodeWearInput(c)
	if err != nil {
		response.ItemError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, in, image)
	if err != nil {
		response.ItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product updated successfully",
		"data":    item,
	})
}

func (h *WearHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID format"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Product deleted successfully",
	})
}

func (h *WearHandler) Search(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.ItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": items})
}

// decodeWearInput turns either a multipart form or a JSON body into the one
// canonical input struct, so nothing past this point cares about the wire
// representation.
func decodeWearInput(c *gin.Context) (dto.WearItemInput, *dto.ImageUpload, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return decodeWearForm(c)
	}

	var in dto.WearItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		return in, nil, apperror.BadRequest("Invalid request body")
	}
	return in, nil, nil
}

func decodeWearForm(c *gin.Context) (dto.WearItemInput, *dto.ImageUpload, error) {
	in := dto.WearItemInput{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		ImageURL:      c.PostForm("image_url"),
		BadgeText:     c.PostForm("badge_text"),
		AddToCartText: c.PostForm("add_to_cart_text"),
		AddToCartLink: c.PostForm("add_to_cart_link"),
		BuyNowText:    c.PostForm("buy_now_text"),
		BuyNowLink:    c.PostForm("buy_now_link"),
	}

	for field, target := range map[string]**dto.Price{
		"standard_price": &in.StandardPrice,
		"custom_price":   &in.CustomPrice,
	} {
		if raw := c.PostForm(field); raw != "" {
			price, err := dto.ParsePrice(raw)
			if err != nil {
				return in, nil, apperror.BadRequest("Invalid price format")
			}
			*target = &price
		}
	}

	fileHeader, err := c.FormFile("image_upload")
	if err != nil || fileHeader == nil || fileHeader.Filename == "" {
		return in, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return in, nil, apperror.BadRequest("Failed to read uploaded image")
	}

	return in, &dto.ImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		FileName:    fileHeader.Filename,
	}, nil
}
