package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateSubjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EditSubjectRequest also serves chapters: only name and description are editable.
type EditSubjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r EditSubjectRequest) Fields() map[string]interface{} {
	set := make(map[string]interface{})
	if r.Name != nil {
		set["name"] = *r.Name
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	return set
}

type CreateChapterRequest struct {
	Name        string             `json:"name" validate:"required"`
	Subject     primitive.ObjectID `json:"subject" validate:"required"`
	Description string             `json:"description"`
}

type CreateQuestionRequest struct {
	Content     string              `json:"content" validate:"required"`
	Options     []string            `json:"options"`
	Answer      string              `json:"answer"`
	Explanation string              `json:"explanation"`
	Subject     primitive.ObjectID  `json:"subject" validate:"required"`
	Chapter     *primitive.ObjectID `json:"chapter"`
}

type EditQuestionRequest struct {
	Content     *string   `json:"content"`
	Options     *[]string `json:"options"`
	Answer      *string   `json:"answer"`
	Explanation *string   `json:"explanation"`
}

func (r EditQuestionRequest) Fields() map[string]interface{} {
	set := make(map[string]interface{})
	if r.Content != nil {
		set["content"] = *r.Content
	}
	if r.Options != nil {
		set["options"] = *r.Options
	}
	if r.Answer != nil {
		set["answer"] = *r.Answer
	}
	if r.Explanation != nil {
		set["explanation"] = *r.Explanation
	}
	return set
}

type CreateQuizRequest struct {
	Name        string               `json:"name" validate:"required"`
	Description string               `json:"description"`
	Subject     primitive.ObjectID   `json:"subject" validate:"required"`
	Chapter     *primitive.ObjectID  `json:"chapter"`
	Questions   []primitive.ObjectID `json:"questions"`
	Duration    int64                `json:"duration" validate:"gte=0"`
}

type EditQuizRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Questions   *[]primitive.ObjectID `json:"questions"`
	Duration    *int64                `json:"duration" validate:"omitempty,gte=0"`
}

func (r EditQuizRequest) Fields() map[string]interface{} {
	set := make(map[string]interface{})
	if r.Name != nil {
		set["name"] = *r.Name
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	if r.Questions != nil {
		set["questions"] = *r.Questions
	}
	if r.Duration != nil {
		set["duration"] = *r.Duration
	}
	return set
}

type CreateExamRequest struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	Subject     primitive.ObjectID `json:"subject" validate:"required"`
	Semester    string             `json:"semester"`
}

type EditExamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Semester    *string `json:"semester"`
}

func (r EditExamRequest) Fields() map[string]interface{} {
	set := make(map[string]interface{})
	if r.Name != nil {
		set["name"] = *r.Name
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	if r.Semester != nil {
		set["semester"] = *r.Semester
	}
	return set
}

type CreateEventRequest struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	Subject     *primitive.ObjectID `json:"subject"`
	StartedAt   int64               `json:"startedAt" validate:"required"`
	EndedAt     int64               `json:"endedAt" validate:"required,gtefield=StartedAt"`
}

type EditEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartedAt   *int64  `json:"startedAt"`
	EndedAt     *int64  `json:"endedAt"`
}

func (r EditEventRequest) Fields() map[string]interface{} {
	set := make(map[string]interface{})
	if r.Name != nil {
		set["name"] = *r.Name
	}
	if r.Description != nil {
		set["description"] = *r.Description
	}
	if r.StartedAt != nil {
		set["startedAt"] = *r.StartedAt
	}
	if r.EndedAt != nil {
		set["endedAt"] = *r.EndedAt
	}
	return set
}

// NewsRequest is used for both create and edit; every field is required.
type NewsRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Author       string `json:"author"`
}

func (r NewsRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"title":        r.Title,
		"content":      r.Content,
		"thumbnailUrl": r.ThumbnailURL,
		"author":       r.Author,
	}
}
