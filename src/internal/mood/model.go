package mood

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Log struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string             `json:"userId" bson:"user_id"`
	MoodValue    int                `json:"moodValue" bson:"mood_value"`
	EmotionLabel string             `json:"emotionLabel" bson:"emotion_label"`
	Note         string             `json:"note" bson:"note"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
}

// CreateLogRequest represents a mood check-in submission. MoodValue arrives
// as a string so an unparseable value can fall back to the neutral default.
type CreateLogRequest struct {
	MoodValue    string `json:"moodValue"`
	EmotionLabel string `json:"emotionLabel"`
	Note         string `json:"note"`
}

// ChartSeries is a mood history prepared for charting, oldest point first.
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}
