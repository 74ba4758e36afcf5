package models

import "time"

// CategoryAdminSentinel is the reserved category value that routes the admin
// UI to the AI lab. It never appears in the public category list.
const CategoryAdminSentinel = "ADMIN_AI"

// DefaultCategories is the fixed starter set shown to authors. The effective
// list is this set unioned with every distinct category observed on posts.
var DefaultCategories = []string{
	"Mẹo vặt",
	"Học thông minh",
	"Kỹ năng & Tư duy",
	"Truyền cảm hứng",
	"Công nghệ & Mẹo số",
}

// Category is an explicitly registered category name.
type Category struct {
	Name      string    `json:"name"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
