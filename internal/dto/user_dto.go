package dto

// ListUsersQuery carries the pagination and filter parameters of the user
// listing endpoint.
type ListUsersQuery struct {
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage    int    `form:"per_page,default=10" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	Department string `form:"department"`
	Level      string `form:"level"`
	Status     string `form:"status" binding:"omitempty,oneof=active online idle offline"`
}

type StatusResponse struct {
	Success    bool    `json:"success"`
	Status     string  `json:"status"`
	LastSeen   *string `json:"last_seen"`
	FirstName  string  `json:"first_name"`
	Department string  `json:"department"`
}

// SkippedUser reports why one entry of a bulk-create payload was not created.
type SkippedUser struct {
	Index    int      `json:"index"`
	Nickname string   `json:"nickname"`
	Errors   []string `json:"errors"`
}

type BulkCreateResponse struct {
	Success        bool          `json:"success"`
	CreatedCount   int           `json:"created_count"`
	SkippedCount   int           `json:"skipped_count"`
	CreatedUserIDs []string      `json:"created_user_ids"`
	Skipped        []SkippedUser `json:"skipped"`
}
