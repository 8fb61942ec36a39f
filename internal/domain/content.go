package domain

import "school-cms/internal/docstore"

// BlogPost is a published article on the public site.
type BlogPost struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Excerpt     string           `json:"excerpt"`
	Content     string           `json:"content"`
	ImageURL    string           `json:"imageUrl"`
	PublishDate docstore.Instant `json:"publishDate"`
	ReadTime    string           `json:"readTime"`
}

// Event is a school event announced on the public site.
type Event struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	EventDate   docstore.Instant `json:"eventDate"`
	Location    string           `json:"location"`
	ImageURL    string           `json:"imageUrl"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   string           `json:"phone"`
	Subject string           `json:"subject"`
	Message string           `json:"message"`
	Date    docstore.Instant `json:"date"`
}

// DefaultReadTime is applied to blog posts created without an estimate.
const DefaultReadTime = "5 min read"
