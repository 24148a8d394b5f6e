package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Price accepts either a JSON number or a 2-decimal string ("19.99") so
// form-posted and JSON clients share one canonical input struct.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}

	*p = Price(value)
	return nil
}

// ParsePrice converts a form field value.
func ParsePrice(s string) (Price, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return Price(value), nil
}

// WearItemInput is the canonical decoded body of the create/update listing
// endpoints. Handlers decode multipart form or JSON into it before any
// validation runs; nothing downstream branches on the wire representation.
type WearItemInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	BadgeText     string `json:"badge_text"`
	StandardPrice *Price `json:"standard_price"`
	CustomPrice   *Price `json:"custom_price"`
	AddToCartText string `json:"add_to_cart_text"`
	AddToCartLink string `json:"add_to_cart_link"`
	BuyNowText    string `json:"buy_now_text"`
	BuyNowLink    string `json:"buy_now_link"`
}

// MissingFields lists required fields absent from the input, in the order
// they are documented.
func (in WearItemInput) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if in.StandardPrice == nil {
		missing = append(missing, "standard_price")
	}
	if in.CustomPrice == nil {
		missing = append(missing, "custom_price")
	}
	if strings.TrimSpace(in.AddToCartText) == "" {
		missing = append(missing, "add_to_cart_text")
	}
	if strings.TrimSpace(in.BuyNowText) == "" {
		missing = append(missing, "buy_now_text")
	}
	return missing
}
