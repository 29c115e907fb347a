package document

import (
	"context"
	"fmt"

	"github.com/Mdtr3002/hms-be/internal/model"
	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/store"
)

func NewPatientRepository(s store.Store) repository.PatientRepository {
	return New[model.Patient](s, store.Patients)
}

type staffRepository struct {
	*Repository[model.Staff, *model.Staff]
}

func NewStaffRepository(s store.Store) repository.StaffRepository {
	return &staffRepository{Repository: New[model.Staff](s, store.Staffs)}
}

func (r *staffRepository) CreateFromRequest(ctx context.Context, req model.CreateStaffRequest) (*model.Staff, error) {
	staff, err := model.NewStaff(req)
	if err != nil {
		return nil, fmt.Errorf("invalid staff: %w", err)
	}
	if err := r.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func NewSubjectRepository(s store.Store) repository.SubjectRepository {
	return New[model.Subject](s, store.Subjects)
}

func NewChapterRepository(s store.Store) repository.ChapterRepository {
	return New[model.Chapter](s, store.Chapters)
}

func NewQuestionRepository(s store.Store) repository.QuestionRepository {
	return New[model.Question](s, store.Questions)
}

func NewQuizRepository(s store.Store) repository.QuizRepository {
	return New[model.Quiz](s, store.Quizzes)
}

func NewExamRepository(s store.Store) repository.ExamRepository {
	return New[model.Exam](s, store.Exams)
}

func NewEventRepository(s store.Store) repository.EventRepository {
	return New[model.Event](s, store.Events)
}

func NewNewsRepository(s store.Store) repository.NewsRepository {
	return New[model.News](s, store.News)
}
