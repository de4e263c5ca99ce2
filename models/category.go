package models

// Category is an entry of the food category catalog used by the category selector.
type Category struct {
	ID   int    `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Slug string `json:"slug" bson:"slug"`
}
