package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sakib-arifin/exam-portal-api/internal/models"
	"github.com/sakib-arifin/exam-portal-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// In-memory repository fakes shared by the service tests. They mirror the
// GORM-backed behavior the services rely on: not-found surfaces as
// gorm.ErrRecordNotFound and list order follows ascending identifiers.

type memExamRepo struct {
	exams  map[uint]models.Exam
	nextID uint
}

func newMemExamRepo() *memExamRepo {
	return &memExamRepo{exams: map[uint]models.Exam{}, nextID: 1}
}

func (r *memExamRepo) ListByOwner(_ context.Context, ownerID uint) ([]models.Exam, error) {
	var out []models.Exam
	for _, exam := range r.exams {
		if exam.CreatedBy == ownerID {
			out = append(out, exam)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memExamRepo) ListCatalog(_ context.Context, filter repository.ExamFilter) ([]models.Exam, int64, error) {
	var out []models.Exam
	for _, exam := range r.exams {
		if filter.Search == "" || strings.Contains(strings.ToLower(exam.Title), strings.ToLower(filter.Search)) {
			out = append(out, exam)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memExamRepo) GetByID(_ context.Context, id uint) (models.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return models.Exam{}, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (r *memExamRepo) Create(_ context.Context, exam *models.Exam) error {
	exam.ID = r.nextID
	r.nextID++
	r.exams[exam.ID] = *exam
	return nil
}

func (r *memExamRepo) Update(_ context.Context, exam *models.Exam) error {
	if _, ok := r.exams[exam.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.exams[exam.ID] = *exam
	return nil
}

func (r *memExamRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.exams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.exams, id)
	return nil
}

type memQuestionRepo struct {
	questions map[uint]models.Question
	nextID    uint
}

func newMemQuestionRepo() *memQuestionRepo {
	return &memQuestionRepo{questions: map[uint]models.Question{}, nextID: 1}
}

func (r *memQuestionRepo) ListByExam(_ context.Context, examID uint) ([]models.Question, error) {
	var out []models.Question
	for _, question := range r.questions {
		if question.ExamID == examID {
			out = append(out, question)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memQuestionRepo) CountByExam(_ context.Context, examID uint) (int64, error) {
	var count int64
	for _, question := range r.questions {
		if question.ExamID == examID {
			count++
		}
	}
	return count, nil
}

func (r *memQuestionRepo) GetByID(_ context.Context, examID, id uint) (models.Question, error) {
	question, ok := r.questions[id]
	if !ok || question.ExamID != examID {
		return models.Question{}, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (r *memQuestionRepo) Create(_ context.Context, question *models.Question) error {
	question.ID = r.nextID
	r.nextID++
	r.questions[question.ID] = *question
	return nil
}

func (r *memQuestionRepo) Update(_ context.Context, question *models.Question) error {
	if _, ok := r.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.questions[question.ID] = *question
	return nil
}

func (r *memQuestionRepo) Delete(_ context.Context, examID, id uint) error {
	question, ok := r.questions[id]
	if !ok || question.ExamID != examID {
		return gorm.ErrRecordNotFound
	}
	delete(r.questions, id)
	return nil
}

type attemptKey struct {
	studentID uint
	examID    uint
}

type memAttemptRepo struct {
	attempts  map[attemptKey]models.Attempt
	responses map[uint][]models.Response
	questions *memQuestionRepo
	nextID    uint
}

func newMemAttemptRepo(questions *memQuestionRepo) *memAttemptRepo {
	return &memAttemptRepo{
		attempts:  map[attemptKey]models.Attempt{},
		responses: map[uint][]models.Response{},
		questions: questions,
		nextID:    1,
	}
}

func (r *memAttemptRepo) Replace(_ context.Context, attempt *models.Attempt, responses []models.Response) error {
	key := attemptKey{studentID: attempt.StudentID, examID: attempt.ExamID}
	if prior, ok := r.attempts[key]; ok {
		delete(r.responses, prior.ID)
		delete(r.attempts, key)
	}

	attempt.ID = r.nextID
	r.nextID++

	stored := make([]models.Response, 0, len(responses))
	for _, response := range responses {
		response.AttemptID = attempt.ID
		response.ID = r.nextID
		r.nextID++
		stored = append(stored, response)
	}

	r.attempts[key] = *attempt
	r.responses[attempt.ID] = stored
	return nil
}

func (r *memAttemptRepo) LatestByStudent(_ context.Context, studentID uint) (models.Attempt, error) {
	var latest models.Attempt
	found := false
	for key, attempt := range r.attempts {
		if key.studentID != studentID {
			continue
		}
		if !found || attempt.ID > latest.ID {
			latest = attempt
			found = true
		}
	}
	if !found {
		return models.Attempt{}, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (r *memAttemptRepo) ListRecentByStudent(_ context.Context, studentID uint, limit int) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []models.Attempt
	for key, attempt := range r.attempts {
		if key.studentID == studentID {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAttemptRepo) ResponsesForAttempt(_ context.Context, attemptID uint) ([]models.Response, error) {
	responses := append([]models.Response(nil), r.responses[attemptID]...)
	for i := range responses {
		if r.questions != nil {
			if question, ok := r.questions.questions[responses[i].QuestionID]; ok {
				responses[i].Question = question
			}
		}
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].QuestionID < responses[j].QuestionID })
	return responses, nil
}

func (r *memAttemptRepo) GetResponse(_ context.Context, id uint) (models.Response, error) {
	for _, responses := range r.responses {
		for _, response := range responses {
			if response.ID == id {
				return response, nil
			}
		}
	}
	return models.Response{}, gorm.ErrRecordNotFound
}

func (r *memAttemptRepo) UpdateResponse(_ context.Context, updated *models.Response) error {
	for attemptID, responses := range r.responses {
		for i, response := range responses {
			if response.ID == updated.ID {
				r.responses[attemptID][i] = *updated
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memAttemptRepo) CountResponses(_ context.Context, examID, studentID uint) (int64, error) {
	var count int64
	for _, responses := range r.responses {
		for _, response := range responses {
			if response.ExamID == examID && response.StudentID == studentID {
				count++
			}
		}
	}
	return count, nil
}

type memSessionRepo struct {
	sessions  map[attemptKey]models.ExamSession
	completed map[attemptKey]bool
	nextID    uint
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{
		sessions:  map[attemptKey]models.ExamSession{},
		completed: map[attemptKey]bool{},
		nextID:    1,
	}
}

func (r *memSessionRepo) GetOrCreate(_ context.Context, studentID, examID uint, start time.Time) (models.ExamSession, error) {
	key := attemptKey{studentID: studentID, examID: examID}
	if session, ok := r.sessions[key]; ok {
		return session, nil
	}

	session := models.ExamSession{
		ID:        r.nextID,
		StudentID: studentID,
		ExamID:    examID,
		StartTime: start,
	}
	r.nextID++
	r.sessions[key] = session
	return session, nil
}

func (r *memSessionRepo) MarkCompleted(_ context.Context, studentID, examID uint) error {
	key := attemptKey{studentID: studentID, examID: examID}
	session, ok := r.sessions[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	session.Completed = true
	r.sessions[key] = session
	r.completed[key] = true
	return nil
}

type memAssignmentRepo struct {
	assignments map[uint]models.ExamAssignment
	nextID      uint
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: map[uint]models.ExamAssignment{}, nextID: 1}
}

func (r *memAssignmentRepo) ListByExam(_ context.Context, examID uint) ([]models.ExamAssignment, error) {
	var out []models.ExamAssignment
	for _, assignment := range r.assignments {
		if assignment.ExamID == examID {
			out = append(out, assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAssignmentRepo) ListByStudent(_ context.Context, studentID uint) ([]models.ExamAssignment, error) {
	var out []models.ExamAssignment
	for _, assignment := range r.assignments {
		if assignment.StudentID == studentID {
			out = append(out, assignment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAssignmentRepo) Exists(_ context.Context, examID, studentID uint) (bool, error) {
	for _, assignment := range r.assignments {
		if assignment.ExamID == examID && assignment.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAssignmentRepo) Create(_ context.Context, assignment *models.ExamAssignment) error {
	assignment.ID = r.nextID
	r.nextID++
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *memAssignmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.assignments, id)
	return nil
}

type memUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint]models.User{}, nextID: 1}
}

func (r *memUserRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	var out []models.User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByIDAndRole(_ context.Context, id uint, role models.Role) (models.User, error) {
	user, ok := r.users[id]
	if !ok || user.Role != role {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

type capturedActivity struct {
	entries []ActivityEntry
}

func (c *capturedActivity) Record(_ context.Context, entry ActivityEntry) {
	c.entries = append(c.entries, entry)
}
