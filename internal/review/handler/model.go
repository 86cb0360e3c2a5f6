package handler

import "github.com/mirellenails/salon-backend/internal/review"

type ReviewRequest struct {
	Name    string `json:"name"`
	Service string `json:"service"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

func (r ReviewRequest) ToInput() review.SubmitInput {
	return review.SubmitInput{
		Name:    r.Name,
		Service: r.Service,
		Rating:  r.Rating,
		Text:    r.Text,
	}
}

type ReviewsResponse struct {
	Reviews []review.Review `json:"reviews"`
}
