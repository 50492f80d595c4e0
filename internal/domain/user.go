package domain

import "time"

// User represents a reader account.
type User struct {
	Record
	ReadingGoal     *ReadingGoal          `json:"reading_goal,omitempty"`
	Email           string                `json:"email"`
	Name            string                `json:"name"`
	PasswordHash    string                `json:"-"`
	FavoriteGenres  []string              `json:"favorite_genres,omitempty"`
	FavoriteAuthors []string              `json:"favorite_authors,omitempty"`
	BookCollection  []BookCollectionEntry `json:"book_collection"`
}

// ReadingStatus tracks where a book sits in a user's reading lifecycle.
type ReadingStatus string

// Reading status values.
const (
	StatusNotStarted ReadingStatus = "not_started"
	StatusReading    ReadingStatus = "reading"
	StatusFinished   ReadingStatus = "finished"
)

// Valid returns true if the status is a recognized value.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusReading, StatusFinished:
		return true
	default:
		return false
	}
}

// BookCollectionEntry is a user's per-book reading state: bookmark flag,
// page progress, lifecycle status, and the log of reading sessions.
type BookCollectionEntry struct {
	BookID          string           `json:"book_id"`
	Status          ReadingStatus    `json:"status"`
	Progress        int              `json:"progress"`
	IsBookmarked    bool             `json:"is_bookmarked"`
	ReadingSessions []ReadingSession `json:"reading_sessions"`
}

// ReadingSession records a single sitting. Sessions are append-only.
type ReadingSession struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	PagesRead   int       `json:"pages_read"`
	MinutesRead int       `json:"minutes_read"`
}

// CollectionEntry returns the entry for bookID, or nil if the user has none.
func (u *User) CollectionEntry(bookID string) *BookCollectionEntry {
	for i := range u.BookCollection {
		if u.BookCollection[i].BookID == bookID {
			return &u.BookCollection[i]
		}
	}
	return nil
}

// EnsureCollectionEntry returns the entry for bookID, creating a fresh
// not-started entry if the user has none yet.
func (u *User) EnsureCollectionEntry(bookID string) *BookCollectionEntry {
	if entry := u.CollectionEntry(bookID); entry != nil {
		return entry
	}
	u.BookCollection = append(u.BookCollection, BookCollectionEntry{
		BookID: bookID,
		Status: StatusNotStarted,
	})
	return &u.BookCollection[len(u.BookCollection)-1]
}

// RemoveCollectionEntry deletes the entry for bookID.
// Returns true if an entry was removed.
func (u *User) RemoveCollectionEntry(bookID string) bool {
	for i := range u.BookCollection {
		if u.BookCollection[i].BookID == bookID {
			u.BookCollection = append(u.BookCollection[:i], u.BookCollection[i+1:]...)
			return true
		}
	}
	return false
}

// Removable reports whether the entry can be dropped entirely on unbookmark.
// Entries with recorded progress or sessions are kept so history survives.
func (e *BookCollectionEntry) Removable() bool {
	return e.Progress == 0 && len(e.ReadingSessions) == 0
}

// RecordSession appends a reading session ending now and advances progress.
// The start time is approximated by subtracting the reported minutes from now.
// Pages read is the delta between the new page and the previous progress;
// a brand-new entry credits the full page number.
func (e *BookCollectionEntry) RecordSession(pageNumber, minutesRead, pageCount int, now time.Time) ReadingSession {
	pagesRead := pageNumber - e.Progress
	if e.Status == StatusNotStarted && e.Progress == 0 {
		pagesRead = pageNumber
	}
	if pagesRead < 0 {
		pagesRead = 0
	}

	session := ReadingSession{
		StartTime:   now.Add(-time.Duration(minutesRead) * time.Minute),
		EndTime:     now,
		PagesRead:   pagesRead,
		MinutesRead: minutesRead,
	}
	e.ReadingSessions = append(e.ReadingSessions, session)
	e.Progress = pageNumber
	e.advanceStatus(pageCount)

	return session
}

// advanceStatus moves the entry through the reading lifecycle based on progress.
func (e *BookCollectionEntry) advanceStatus(pageCount int) {
	if e.Status == StatusNotStarted && e.Progress > 0 {
		e.Status = StatusReading
	}
	if pageCount > 0 && e.Progress >= pageCount {
		e.Status = StatusFinished
	}
}
