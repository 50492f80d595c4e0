package domain

// Review is a user's rating and comment on a book.
// One review per user per book; the book's aggregate rating is recomputed
// from the full review set after every mutation.
type Review struct {
	Record
	BookID  string `json:"book_id"`
	UserID  string `json:"user_id"`
	Comment string `json:"comment,omitempty"`
	Rating  int    `json:"rating"`
}
