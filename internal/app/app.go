// Package app wires repositories, services and controllers on top of a store.
package app

import (
	"github.com/Mdtr3002/hms-be/internal/handler/chapter"
	"github.com/Mdtr3002/hms-be/internal/handler/event"
	"github.com/Mdtr3002/hms-be/internal/handler/exam"
	"github.com/Mdtr3002/hms-be/internal/handler/news"
	"github.com/Mdtr3002/hms-be/internal/handler/patient"
	"github.com/Mdtr3002/hms-be/internal/handler/question"
	"github.com/Mdtr3002/hms-be/internal/handler/quiz"
	"github.com/Mdtr3002/hms-be/internal/handler/staff"
	"github.com/Mdtr3002/hms-be/internal/handler/subject"
	"github.com/Mdtr3002/hms-be/internal/repository"
	"github.com/Mdtr3002/hms-be/internal/repository/document"
	"github.com/Mdtr3002/hms-be/internal/router"
	"github.com/Mdtr3002/hms-be/internal/service"
	chaptersvc "github.com/Mdtr3002/hms-be/internal/service/chapter"
	eventsvc "github.com/Mdtr3002/hms-be/internal/service/event"
	examsvc "github.com/Mdtr3002/hms-be/internal/service/exam"
	newssvc "github.com/Mdtr3002/hms-be/internal/service/news"
	patientsvc "github.com/Mdtr3002/hms-be/internal/service/patient"
	questionsvc "github.com/Mdtr3002/hms-be/internal/service/question"
	quizsvc "github.com/Mdtr3002/hms-be/internal/service/quiz"
	staffsvc "github.com/Mdtr3002/hms-be/internal/service/staff"
	subjectsvc "github.com/Mdtr3002/hms-be/internal/service/subject"
	"github.com/Mdtr3002/hms-be/internal/store"
)

// Repositories holds one repository per collection.
type Repositories struct {
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

func NewRepositories(s store.Store) Repositories {
	return Repositories{
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

// Purgeables lists the repositories the purge worker sweeps.
func (r Repositories) Purgeables() []repository.Purgeable {
	all := []interface{}{
		r.Patients, r.Staffs, r.Subjects, r.Chapters, r.Questions,
		r.Quizzes, r.Exams, r.Events, r.News,
	}
	out := make([]repository.Purgeable, 0, len(all))
	for _, repo := range all {
		if p, ok := repo.(repository.Purgeable); ok {
			out = append(out, p)
		}
	}
	return out
}

// Controllers builds every admin controller in mount order.
func Controllers(repos Repositories, deps service.Deps) []router.Controller {
	return []router.Controller{
		router.For("subject", subject.NewHandler(subjectsvc.NewService(subjectsvc.Repositories{
			Subjects:  repos.Subjects,
			Chapters:  repos.Chapters,
			Exams:     repos.Exams,
			Quizzes:   repos.Quizzes,
			Questions: repos.Questions,
			Events:    repos.Events,
		}, deps))),
		router.For("chapter", chapter.NewHandler(chaptersvc.NewService(chaptersvc.Repositories{
			Chapters:  repos.Chapters,
			Subjects:  repos.Subjects,
			Questions: repos.Questions,
			Quizzes:   repos.Quizzes,
		}, deps))),
		router.For("question", question.NewHandler(questionsvc.NewService(questionsvc.Repositories{
			Questions: repos.Questions,
			Subjects:  repos.Subjects,
			Chapters:  repos.Chapters,
		}, deps))),
		router.For("quiz", quiz.NewHandler(quizsvc.NewService(quizsvc.Repositories{
			Quizzes:   repos.Quizzes,
			Subjects:  repos.Subjects,
			Chapters:  repos.Chapters,
			Questions: repos.Questions,
		}, deps))),
		router.For("exam", exam.NewHandler(examsvc.NewService(repos.Exams, repos.Subjects, deps))),
		router.For("event", event.NewHandler(eventsvc.NewService(repos.Events, repos.Subjects, deps))),
		router.For("news", news.NewHandler(newssvc.NewService(repos.News, deps))),
		router.For("patient", patient.NewHandler(patientsvc.NewService(repos.Patients, deps))),
		router.For("staff", staff.NewHandler(staffsvc.NewService(repos.Staffs, deps))),
	}
}
