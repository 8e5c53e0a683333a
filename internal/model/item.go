package model

import (
	"fmt"
	"time"
)

// Item is a single row of the list, addressed by its Index.
type Item struct {
	ID        string    `json:"id"`
	Index     int       `json:"index"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewItemParams holds parameters for creating a new Item.
type NewItemParams struct {
	Index int
	Text  string
	Tags  []string
}

// NewItem creates an Item with generated UUID and timestamp.
func NewItem(params NewItemParams) Item {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return Item{
		ID:        GenerateUUID(),
		Index:     params.Index,
		Text:      params.Text,
		Tags:      tags,
		CreatedAt: time.Now(),
	}
}

// GeneratedText is the text of a seeded item.
func GeneratedText(index int) string {
	return fmt.Sprintf("item %d", index)
}

// ItemIndex returns the item's index. Used to check fetched windows.
func ItemIndex(i Item) int {
	return i.Index
}
