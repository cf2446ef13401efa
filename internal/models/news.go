package models

// ContentBlock is one section of a news article body. Text blocks carry
// Text; image blocks carry ImageURL and an optional caption.
type ContentBlock struct {
	Type     string `json:"type" validate:"required,oneof=text image"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// NewsArticle is a published announcement. Thumbnail and inline images
// are uploaded separately and referenced by URL, never embedded.
type NewsArticle struct {
	Title     string         `json:"title" validate:"required"`
	PostDate  string         `json:"post_date" validate:"required"`
	Thumbnail string         `json:"thumbnail" validate:"required"`
	Content   []ContentBlock `json:"content,omitempty" validate:"dive"`
	Order     *int           `json:"order,omitempty"`
}

func (a *NewsArticle) DisplayName() string { return a.Title }

func (a *NewsArticle) OrderValue() (int, bool) {
	if a.Order == nil {
		return 0, false
	}
	return *a.Order, true
}

func (a *NewsArticle) SetOrder(n int) { a.Order = &n }

// NewsListItem is the listing projection served to the public site.
type NewsListItem struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Image string `json:"image"`
	Link  string `json:"link"`
}
