package models

// RecommendationKind distinguishes places from programs
type RecommendationKind string

const (
	KindPlace   RecommendationKind = "place"
	KindProgram RecommendationKind = "program"
)

// Recommendation is a suggested place or program
type Recommendation struct {
	ID          int64              `json:"id"`
	Kind        RecommendationKind `json:"kind"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Location    string             `json:"location,omitempty"`
}

// RecommendationPage is one page of recommendations
type RecommendationPage struct {
	Items      []Recommendation `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}
