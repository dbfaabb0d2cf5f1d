package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserAuth is a locally registered API account (service users created
// through /auth/register; passwords bcrypt-hashed).
type UserAuth struct {
	ID        string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Username  string     `gorm:"unique;not null" json:"username"`
	Password  string     `gorm:"not null" json:"-"`
	Name      string     `json:"name,omitempty"`
	Role      string     `gorm:"default:'user'" json:"role"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserAuth) TableName() string { return "user_auths" }

// SheetUser mirrors one data row of the USER sheet
// (Username | Password | Name | Page Acess). The password is stored the
// way the external store keeps it; this table is a cache of that store,
// not a credential vault of its own.
type SheetUser struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	// Comma-separated page list as written in the sheet; "all" grants
	// every page.
	PageAccess string `json:"pageAccess"`

	LastSyncedAt time.Time `json:"-"`
}

func (SheetUser) TableName() string { return "sheet_users" }

// Pages splits the access list into trimmed, non-empty names.
// An empty cell means full access, matching the sheet convention.
func (u *SheetUser) Pages() []string {
	if strings.TrimSpace(u.PageAccess) == "" {
		return []string{"all"}
	}
	parts := strings.Split(u.PageAccess, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasPageAccess reports whether the user may open the named page
func (u *SheetUser) HasPageAccess(page string) bool {
	for _, p := range u.Pages() {
		if strings.EqualFold(p, "all") || strings.EqualFold(p, page) {
			return true
		}
	}
	return false
}
