package dto

// CreateCategoryRequest registers a category explicitly, instead of the old
// behavior of materializing whatever string was typed into the post form.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// CategoryListResponse is the effective category list: the fixed default set
// unioned with every distinct category observed on posts, minus the admin
// sentinel value.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}
