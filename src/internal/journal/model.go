package journal

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Entry struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        string             `json:"userId" bson:"user_id"`
	Title         string             `json:"title" bson:"title"`
	Content       string             `json:"content" bson:"content"`
	Mood          string             `json:"mood" bson:"mood"`
	Tags          string             `json:"tags" bson:"tags"`
	ImageFilename string             `json:"imageFilename,omitempty" bson:"image_filename,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
}

// CreateEntryRequest carries a new journal entry. ImageFilename is resolved
// by the handler after storing the upload.
type CreateEntryRequest struct {
	Title         string
	Content       string
	Mood          string
	Tags          string
	ImageFilename string
}
