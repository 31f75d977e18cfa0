package model

// Achievement is a card in the home page achievements section
type Achievement struct {
	ID          int
	Title       string
	Description string
	ImageURL    string
	Icon        string
}

// Vertical is one of the company's business lines with its own landing page
type Vertical struct {
	Slug    string
	Name    string
	Tagline string
	Body    string
}
