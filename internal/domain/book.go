package domain

// Book represents a title in the catalog.
type Book struct {
	Record
	CoverImage   *CoverImage `json:"cover_image,omitempty"`
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description,omitempty"`
	Authors      []string    `json:"authors"`
	Genres       []string    `json:"genres,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	Moods        []string    `json:"moods,omitempty"`
	ReleaseYear  int         `json:"release_year,omitempty"`
	PageCount    int         `json:"page_count"`
	Rating       float64     `json:"rating"`
	RatingsCount int         `json:"ratings_count"`
}

// CoverImage holds cover art metadata.
type CoverImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// GenreMatchCount returns the number of genres this book shares with other.
// Duplicate genre names within a single book count once.
func (b *Book) GenreMatchCount(other *Book) int {
	if b == nil || other == nil {
		return 0
	}
	return overlapCount(b.Genres, other.Genres)
}

// MoodMatchCount returns the number of moods this book shares with the given set.
func (b *Book) MoodMatchCount(moods []string) int {
	return overlapCount(b.Moods, moods)
}

// overlapCount returns the size of the set intersection of a and b.
func overlapCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			count++
		}
	}
	return count
}
