package review

import "time"

// MaxTextLength bounds the review body.
const MaxTextLength = 500

// Services is the fixed set of service names a review can be left for.
var Services = []string{
	"Manicure",
	"Pedicure",
	"Nail Extensions",
	"Nail Design",
	"Brows & Lashes",
	"Other",
}

func IsKnownService(name string) bool {
	for _, s := range Services {
		if s == name {
			return true
		}
	}

	return false
}

// Review is immutable once created; the only admin operation is deletion.
type Review struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Service string    `json:"service"`
	Rating  int       `json:"rating"`
	Text    string    `json:"text"`
	Date    time.Time `json:"date"`
}

type SubmitInput struct {
	Name    string
	Service string
	Rating  int
	Text    string
}

// SubmitResult is how validation failures reach the client: a structured
// success flag with a field-level message, never an error. Nothing is
// persisted on failure.
type SubmitResult struct {
	Success bool    `json:"success"`
	Field   string  `json:"field,omitempty"`
	Message string  `json:"message,omitempty"`
	Review  *Review `json:"review,omitempty"`
}
