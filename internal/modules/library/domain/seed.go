package domain

import "time"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// SeedBooks is the starter shelf used when storage holds no books.
func SeedBooks() []Book {
	return []Book{
		{
			ID:              1,
			Title:           "The Great Gatsby",
			Author:          "F. Scott Fitzgerald",
			Genre:           "Classic Literature",
			Pages:           180,
			DateAdded:       day(2024, time.January, 15),
			DateStarted:     dayPtr(2024, time.January, 20),
			DateFinished:    dayPtr(2024, time.February, 5),
			Rating:          5,
			Status:          StatusCompleted,
			ReadingProgress: 100,
			TimeSpent:       420,
			Notes:           "A masterpiece of American literature. The symbolism and themes are incredibly deep.",
			Tags:            []string{"classic", "american", "symbolism"},
			Excerpt:         "In my younger and more vulnerable years my father gave me some advice that I've carried with me ever since. 'Whenever you feel like criticizing anyone,' he told me, 'just remember that all the people in this world haven't had the advantages that you've had.'",
		},
		{
			ID:              2,
			Title:           "Pride and Prejudice",
			Author:          "Jane Austen",
			Genre:           "Romance",
			Pages:           432,
			DateAdded:       day(2024, time.February, 10),
			DateStarted:     dayPtr(2024, time.February, 15),
			Rating:          4,
			Status:          StatusReading,
			ReadingProgress: 65,
			TimeSpent:       280,
			Notes:           "Enjoying the wit and social commentary. Elizabeth Bennet is a fantastic character.",
			Tags:            []string{"romance", "classic", "british"},
			Excerpt:         "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife. However little known the feelings or views of such a man may be on his first entering a neighbourhood, this truth is so well fixed in the minds of the surrounding families.",
		},
		{
			ID:        3,
			Title:     "The Hobbit",
			Author:    "J.R.R. Tolkien",
			Genre:     "Fantasy",
			Pages:     310,
			DateAdded: day(2024, time.March, 1),
			Status:    StatusToRead,
			Notes:     "Looking forward to this adventure!",
			Tags:      []string{"fantasy", "adventure", "tolkien"},
			Excerpt:   "In a hole in the ground there lived a hobbit. Not a nasty, dirty, wet hole, filled with the ends of worms and an oozy smell, nor yet a dry, bare, sandy hole with nothing in it to sit down on or to eat: it was a hobbit-hole, and that means comfort.",
		},
		{
			ID:              4,
			Title:           "Atomic Habits",
			Author:          "James Clear",
			Genre:           "Self-Help",
			Pages:           320,
			DateAdded:       day(2024, time.January, 5),
			DateStarted:     dayPtr(2024, time.January, 10),
			Rating:          5,
			Status:          StatusCompleted,
			ReadingProgress: 100,
			TimeSpent:       380,
			Notes:           "Life-changing book about building good habits and breaking bad ones.",
			Tags:            []string{"self-help", "productivity", "habits"},
			Excerpt:         "The aggregation of marginal gains is a philosophy that emphasizes the incredible power of making small improvements consistently. If you can get 1% better each day for one year, you'll end up thirty-seven times better by the time you're done.",
		},
		{
			ID:              5,
			Title:           "Dune",
			Author:          "Frank Herbert",
			Genre:           "Science Fiction",
			Pages:           688,
			DateAdded:       day(2024, time.February, 20),
			DateStarted:     dayPtr(2024, time.March, 1),
			Status:          StatusReading,
			ReadingProgress: 25,
			TimeSpent:       180,
			Notes:           "Complex world-building. Taking notes to keep track of all the factions and terminology.",
			Tags:            []string{"sci-fi", "epic", "politics"},
			Excerpt:         "I must not fear. Fear is the mind-killer. Fear is the little-death that brings total obliteration. I will face my fear. I will permit it to pass over me and through me. And when it has gone past I will turn the inner eye to see its path.",
		},
		{
			ID:        6,
			Title:     "The Psychology of Money",
			Author:    "Morgan Housel",
			Genre:     "Finance",
			Pages:     256,
			DateAdded: day(2024, time.March, 10),
			Status:    StatusToRead,
			Notes:     "Recommended by a friend. Excited to learn about behavioral finance.",
			Tags:      []string{"finance", "psychology", "investing"},
			Excerpt:   "The premise of this book is that doing well with money has a little to do with how smart you are and a lot to do with how you behave. And behavior is hard to teach, even to really smart people.",
		},
	}
}
