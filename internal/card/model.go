package card

import "time"

// Card represents a photo card. Likes is a set of user identifiers; a user
// appears at most once no matter how often they like the card.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}
