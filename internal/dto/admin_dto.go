package dto

import (
	"time"
)

// --- Auth ---

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	AccessToken string            `json:"access_token"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        AdminUserResponse `json:"user"`
}

// --- Change list ---

type AdminNoteListRequest struct {
	Search    string `query:"q"`
	UpdatedAt string `query:"updated_at"`
	Page      int    `query:"page"`
	PerPage   int    `query:"per_page"`
}

type ChangeListRow struct {
	Pk    string   `json:"pk"`
	Cells []string `json:"cells"`
}

type ChangeListChoice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type ChangeListFilter struct {
	Field   string             `json:"field"`
	Choices []ChangeListChoice `json:"choices"`
}

type ChangeListResponse struct {
	Columns []string           `json:"columns"`
	Rows    []ChangeListRow    `json:"rows"`
	Filters []ChangeListFilter `json:"filters"`
	Search  string             `json:"search"`
	Total   int64              `json:"total"`
	Page    int                `json:"page"`
	PerPage int                `json:"per_page"`
}
