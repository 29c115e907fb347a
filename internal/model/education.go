package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subject struct {
	Base        `bson:",inline"`
	Ownership   `bson:",inline"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

type Chapter struct {
	Base        `bson:",inline"`
	Ownership   `bson:",inline"`
	Name        string             `json:"name" bson:"name"`
	Subject     primitive.ObjectID `json:"subject" bson:"subject"`
	Description string             `json:"description" bson:"description"`
}

// PopulatedChapter is a chapter with its subject expanded.
type PopulatedChapter struct {
	Chapter
	Subject *Subject `json:"subject"`
}

type Question struct {
	Base        `bson:",inline"`
	Ownership   `bson:",inline"`
	Content     string              `json:"content" bson:"content"`
	Options     []string            `json:"options" bson:"options"`
	Answer      string              `json:"answer,omitempty" bson:"answer,omitempty"`
	Explanation string              `json:"explanation,omitempty" bson:"explanation,omitempty"`
	Subject     primitive.ObjectID  `json:"subject" bson:"subject"`
	Chapter     *primitive.ObjectID `json:"chapter,omitempty" bson:"chapter,omitempty"`
}

type Quiz struct {
	Base        `bson:",inline"`
	Ownership   `bson:",inline"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Subject     primitive.ObjectID   `json:"subject" bson:"subject"`
	Chapter     *primitive.ObjectID  `json:"chapter,omitempty" bson:"chapter,omitempty"`
	Questions   []primitive.ObjectID `json:"questions" bson:"questions"`
	Duration    int64                `json:"duration" bson:"duration"`
}

// PopulatedQuiz is a quiz with its chapter expanded.
type PopulatedQuiz struct {
	Quiz
	Chapter *Chapter `json:"chapter,omitempty"`
}

type Exam struct {
	Base        `bson:",inline"`
	Ownership   `bson:",inline"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Subject     primitive.ObjectID `json:"subject" bson:"subject"`
	Semester    string             `json:"semester" bson:"semester"`
}

type Event struct {
	Base        `bson:",inline"`
	Ownership   `bson:",inline"`
	Name        string              `json:"name" bson:"name"`
	Description string              `json:"description" bson:"description"`
	Subject     *primitive.ObjectID `json:"subject,omitempty" bson:"subject,omitempty"`
	StartedAt   int64               `json:"startedAt" bson:"startedAt"`
	EndedAt     int64               `json:"endedAt" bson:"endedAt"`
}

type News struct {
	Base         `bson:",inline"`
	Ownership    `bson:",inline"`
	Title        string `json:"title" bson:"title"`
	Content      string `json:"content" bson:"content"`
	ThumbnailURL string `json:"thumbnailUrl" bson:"thumbnailUrl"`
	Author       string `json:"author" bson:"author"`
}
