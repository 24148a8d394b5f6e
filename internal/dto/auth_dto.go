package dto

import (
	"regexp"

	"github.com/Destinytch001/naits-server/internal/entity"
)

var (
	birthdayPattern = regexp.MustCompile(`^\d{2}-\d{2}$`)
	whatsappPattern = regexp.MustCompile(`^\d{11}$`)
)

type SignupRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Birthday   string `json:"birthday"`
	Nickname   string `json:"nickname"`
	Department string `json:"department"`
	Level      string `json:"level"`
	Whatsapp   string `json:"whatsapp"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// Validate returns the full list of field problems so the client can show
// them all at once.
func (r SignupRequest) Validate() []string {
	var errs []string

	required := []struct {
		value   string
		message string
	}{
		{r.FirstName, "First name is required"},
		{r.LastName, "Last name is required"},
		{r.Birthday, "Birthday is required (MM-DD format)"},
		{r.Nickname, "Nickname is required"},
		{r.Department, "Department is required"},
		{r.Level, "Level is required"},
		{r.Whatsapp, "WhatsApp number is required (11 digits)"},
		{r.Password, "Password is required (min 10 characters)"},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, f.message)
		}
	}

	if r.Birthday != "" && !birthdayPattern.MatchString(r.Birthday) {
		errs = append(errs, "Birthday must be in MM-DD format")
	}
	if r.Whatsapp != "" && !whatsappPattern.MatchString(r.Whatsapp) {
		errs = append(errs, "WhatsApp number must be 11 digits")
	}
	if r.Password != "" && len(r.Password) < 10 {
		errs = append(errs, "Password must be at least 10 characters")
	}

	return errs
}

type SigninRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// UserResponse is the sanitized user representation. The password hash and
// raw presence timestamps never leave the server through it.
type UserResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Nickname   string  `json:"nickname"`
	Department string  `json:"department"`
	Level      string  `json:"level"`
	Email      string  `json:"email"`
	Whatsapp   string  `json:"whatsapp"`
	LastLogin  *string `json:"last_login"`
	Status     string  `json:"status"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewUserResponse(u *entity.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID.String(),
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Nickname:   u.Nickname,
		Department: u.Department,
		Level:      u.Level,
		Email:      u.Email,
		Whatsapp:   u.Whatsapp,
		Status:     u.Status,
		UpdatedAt:  u.UpdatedAt.Format("2006-01-02T15:04:05"),
	}
	if u.LastLogin != nil {
		formatted := u.LastLogin.Format("2006-01-02T15:04:05")
		resp.LastLogin = &formatted
	}
	return resp
}
