package types

// EntityKind distinguishes characters from other key terms.
type EntityKind string

const (
	KindCharacter EntityKind = "character"
	KindKeyTerm   EntityKind = "key_term"
)

// BookLevel is the chapter number used for whole-book records.
const BookLevel = -1

// EntityCount is a named entity with the number of times it was mentioned.
type EntityCount struct {
	// Name is the consolidated entity text.
	Name string `json:"name" yaml:"name"`

	// Count is the number of mentions.
	Count int `json:"count" yaml:"count"`
}

// EntityRecord ties an entity count to a book and chapter for persistence.
type EntityRecord struct {
	BookID      int        `json:"book_id" yaml:"book_id"`
	Chapter     int        `json:"chapter" yaml:"chapter"`
	Kind        EntityKind `json:"kind" yaml:"kind"`
	EntityCount `yaml:",inline"`
}
