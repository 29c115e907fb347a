// Package servicetest provides fixtures for service and handler tests.
package servicetest

import (
	"context"
	"sync"

	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/repository/document"
	"github.com/Mdtr3002/hms-be/internal/store/memory"
	"github.com/Mdtr3002/hms-be/pkg/messaging"
)

// Recorder is a publisher that keeps every event.
type Recorder struct {
	mu     sync.Mutex
	events []messaging.ChangeEvent
}

func (r *Recorder) Publish(_ context.Context, event messaging.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

// Repos wires every repository to one in-memory store.
type Repos struct {
	Store     *memory.Store
	Patients  repository.PatientRepository
	Staffs    repository.StaffRepository
	Subjects  repository.SubjectRepository
	Chapters  repository.ChapterRepository
	Questions repository.QuestionRepository
	Quizzes   repository.QuizRepository
	Exams     repository.ExamRepository
	Events    repository.EventRepository
	News      repository.NewsRepository
}

func NewRepos() *Repos {
	s := memory.New()
	return &Repos{
		Store:     s,
		Patients:  document.NewPatientRepository(s),
		Staffs:    document.NewStaffRepository(s),
		Subjects:  document.NewSubjectRepository(s),
		Chapters:  document.NewChapterRepository(s),
		Questions: document.NewQuestionRepository(s),
		Quizzes:   document.NewQuizRepository(s),
		Exams:     document.NewExamRepository(s),
		Events:    document.NewEventRepository(s),
		News:      document.NewNewsRepository(s),
	}
}
