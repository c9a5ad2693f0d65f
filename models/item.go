package models

// ItemKind discriminates the bookable variants.
type ItemKind string

const (
	ItemCourse       ItemKind = "course"
	ItemLessonOption ItemKind = "lessonOption"
	ItemConsultation ItemKind = "consultation"
)

// BookableItem is anything with a title and a price that a user can reserve
// or enroll in: a course, a private-lesson option, or a consultation type.
// Price fields are raw collaborator values: absent, zero, or non-numeric
// strings all mean "not offered in that currency" (see services/pricing).
type BookableItem struct {
	ID              string   `json:"id"`
	Kind            ItemKind `json:"kind"`
	Title           string   `json:"title"`
	TitleAr         string   `json:"titleAr,omitempty"`
	Description     string   `json:"description,omitempty"`
	Place           string   `json:"place,omitempty"`
	DurationMinutes int      `json:"durationMinutes,omitempty"`
	PriceAED        any      `json:"priceAed,omitempty"`
	PriceUSD        any      `json:"priceUsd,omitempty"`
}

// Pagination mirrors the collaborator's paginated-list envelope.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// CatalogPage is one fetched page of bookable items plus its pagination.
type CatalogPage struct {
	Items      []BookableItem `json:"items"`
	Pagination Pagination     `json:"pagination"`
}
