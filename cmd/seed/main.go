// Package main provides a tool to seed the database with catalog books and
// optional demo reading activity.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/BookSpace/data --books books.json
//	go run ./cmd/seed --data-path ~/BookSpace/data --books books.json --demo-user
package main

import (
	"context"
	"encoding/json/v2"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/bookspace/bookspace-server/internal/auth"
	"github.com/bookspace/bookspace-server/internal/domain"
	"github.com/bookspace/bookspace-server/internal/id"
	"github.com/bookspace/bookspace-server/internal/search"
	"github.com/bookspace/bookspace-server/internal/store"
	"github.com/bookspace/bookspace-server/internal/util"
)

var (
	dataPath  = flag.String("data-path", "", "Base data directory (default: ~/BookSpace/data)")
	booksFile = flag.String("books", "books.json", "JSON file with catalog books to import")
	demoUser  = flag.Bool("demo-user", false, "Create a demo user with reading activity")
)

// seedBook is one catalog entry in the import file.
type seedBook struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	ReleaseYear int      `json:"release_year"`
	PageCount   int      `json:"page_count"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
	Moods       []string `json:"moods"`
}

func main() {
	flag.Parse()

	basePath := *dataPath
	if basePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		basePath = filepath.Join(home, "BookSpace", "data")
	}

	dbPath := filepath.Join(basePath, "db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	index, err := search.NewSearchIndex(search.Options{DataPath: basePath})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()
	s.SetSearchIndexer(index)

	ctx := context.Background()

	books := importBooks(ctx, s, *booksFile)

	if *demoUser {
		createDemoUser(ctx, s, books)
	}

	fmt.Println("Done.")
}

// importBooks loads the books file and creates any books not already present.
func importBooks(ctx context.Context, s *store.Store, path string) []*domain.Book {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read books file: %v", err)
	}

	var entries []seedBook
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Failed to parse books file: %v", err)
	}

	fmt.Printf("Importing %d books\n", len(entries))

	created := make([]*domain.Book, 0, len(entries))
	for _, entry := range entries {
		slug := util.Slugify(entry.Title)

		if existing, err := s.GetBookBySlug(ctx, slug); err == nil {
			fmt.Printf("  skip %q (already in catalog)\n", entry.Title)
			created = append(created, existing)
			continue
		}

		bookID, err := id.Generate("book")
		if err != nil {
			log.Fatalf("Failed to generate book ID: %v", err)
		}

		book := &domain.Book{
			Record:      domain.Record{ID: bookID},
			Title:       entry.Title,
			Slug:        slug,
			Authors:     entry.Authors,
			Description: entry.Description,
			ReleaseYear: entry.ReleaseYear,
			PageCount:   entry.PageCount,
			Genres:      entry.Genres,
			Tags:        entry.Tags,
			Moods:       entry.Moods,
		}
		book.InitTimestamps()

		if err := s.CreateBook(ctx, book); err != nil {
			log.Fatalf("Failed to create book %q: %v", entry.Title, err)
		}

		fmt.Printf("  added %q\n", entry.Title)
		created = append(created, book)
	}

	return created
}

// createDemoUser creates a demo account with bookmarks, sessions, and reviews
// spread over the past two weeks, for trying out the insights screens.
func createDemoUser(ctx context.Context, s *store.Store, books []*domain.Book) {
	const email = "demo@bookspace.local"

	if _, err := s.GetUserByEmail(ctx, email); err == nil {
		fmt.Println("Demo user already exists, skipping")
		return
	}

	passwordHash, err := auth.HashPassword("demo-password")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		log.Fatalf("Failed to generate user ID: %v", err)
	}

	user := &domain.User{
		Record:       domain.Record{ID: userID},
		Email:        email,
		Name:         "Demo Reader",
		PasswordHash: passwordHash,
	}
	user.InitTimestamps()

	user.ReadingGoal = &domain.ReadingGoal{
		CreatedAt: time.Now(),
		Type:      domain.GoalTypeMinutes,
		Frequency: domain.FrequencyDaily,
		Target:    30,
		IsActive:  true,
	}

	// Read 3 random books over the past 14 days.
	shuffled := make([]*domain.Book, len(books))
	copy(shuffled, books)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > 3 {
		shuffled = shuffled[:3]
	}

	now := time.Now()
	for _, book := range shuffled {
		entry := user.EnsureCollectionEntry(book.ID)
		entry.IsBookmarked = true

		for day := 13; day >= 0; day-- {
			// Skip some days so the charts look lived-in.
			if day > 1 && rand.Float32() > 0.7 {
				continue
			}
			minutes := 10 + rand.IntN(40)
			page := min(entry.Progress+5+rand.IntN(25), book.PageCount)
			sessionEnd := now.AddDate(0, 0, -day)
			entry.RecordSession(page, minutes, book.PageCount, sessionEnd)
		}
	}

	if err := s.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	fmt.Printf("Created demo user %s (password: demo-password)\n", email)
}
