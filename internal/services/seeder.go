// Package services implements business logic for the application
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"face-attendance-seed/internal/docstore"
	"face-attendance-seed/internal/fixtures"
	"face-attendance-seed/internal/models"
	"face-attendance-seed/internal/repository"
	"face-attendance-seed/logging"
)

// BotNotifier defines the interface for bot notifications
type BotNotifier interface {
	SendNotification(message string)
}

// Seeder writes one sample student, login attempt and attendance record.
// Every method prints its console status line to out.
type Seeder struct {
	open     docstore.Opener
	backend  string
	label    string
	out      io.Writer
	notifier BotNotifier
	rng      *rand.Rand
	logger   *slog.Logger

	store          docstore.Store
	studentRepo    repository.StudentRepository
	loginRepo      repository.LoginAttemptRepository
	attendanceRepo repository.AttendanceRepository
}

// NewSeeder creates a seeder for backend. notifier may be nil.
func NewSeeder(open docstore.Opener, backend string, out io.Writer, notifier BotNotifier) *Seeder {
	seed := uint64(time.Now().UnixNano())
	return &Seeder{
		open:     open,
		backend:  strings.ToLower(backend),
		label:    docstore.Label(backend),
		out:      out,
		notifier: notifier,
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		logger:   logging.GetLogger().With("run_id", uuid.NewString(), "backend", backend),
	}
}

// Initialize opens the document store and builds the repositories over it.
func (s *Seeder) Initialize(ctx context.Context) error {
	store, err := s.open(ctx)
	if err != nil {
		s.logger.Error("failed to initialize document store", "error", err)
		fmt.Fprintf(s.out, "❌ Error initializing %s client: %v\n", s.label, err)
		return err
	}

	s.store = store
	s.studentRepo = repository.NewDocStoreStudentRepository(store)
	s.loginRepo = repository.NewDocStoreLoginAttemptRepository(store)
	s.attendanceRepo = repository.NewDocStoreAttendanceRepository(store)

	fmt.Fprintf(s.out, "🚀 Setting up %s collections for Student System...\n", s.label)
	return nil
}

// Close releases the store handle. It is safe to call more than once.
func (s *Seeder) Close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	s.studentRepo, s.loginRepo, s.attendanceRepo = nil, nil, nil
	if err != nil {
		s.logger.Warn("failed to close document store", "error", err)
	}
	return err
}

var errNotInitialized = errors.New("seeder is not initialized")

// InsertStudent writes the sample student and returns its generated id.
func (s *Seeder) InsertStudent(ctx context.Context) (string, error) {
	if s.studentRepo == nil {
		return "", s.insertFailed("sample student", models.CollectionStudents, errNotInitialized)
	}

	student := fixtures.SampleStudent(s.rng)
	if err := s.studentRepo.Create(ctx, &student); err != nil {
		return "", s.insertFailed("sample student", models.CollectionStudents, err)
	}

	s.logger.Info("document created", "collection", models.CollectionStudents, "id", student.ID)
	fmt.Fprintf(s.out, "✅ Sample student created with ID: %s\n", student.ID)
	return student.ID, nil
}

// InsertLoginAttempt writes a successful login attempt for studentID.
// studentID is not checked against the students collection.
func (s *Seeder) InsertLoginAttempt(ctx context.Context, studentID string) (string, error) {
	if s.loginRepo == nil {
		return "", s.insertFailed("sample login attempt", models.CollectionLoginAttempts, errNotInitialized)
	}

	attempt := fixtures.SampleLoginAttempt(studentID)
	if err := s.loginRepo.Create(ctx, &attempt); err != nil {
		return "", s.insertFailed("sample login attempt", models.CollectionLoginAttempts, err)
	}

	s.logger.Info("document created", "collection", models.CollectionLoginAttempts, "id", attempt.ID, "student_id", studentID)
	fmt.Fprintf(s.out, "✅ Sample login attempt created with ID: %s\n", attempt.ID)
	return attempt.ID, nil
}

// InsertAttendance writes a present, face-recognition attendance record for studentID.
func (s *Seeder) InsertAttendance(ctx context.Context, studentID string) (string, error) {
	if s.attendanceRepo == nil {
		return "", s.insertFailed("sample attendance record", models.CollectionAttendance, errNotInitialized)
	}

	attendance := fixtures.SampleAttendance(studentID)
	if err := s.attendanceRepo.Create(ctx, &attendance); err != nil {
		return "", s.insertFailed("sample attendance record", models.CollectionAttendance, err)
	}

	s.logger.Info("document created", "collection", models.CollectionAttendance, "id", attendance.ID, "student_id", studentID)
	fmt.Fprintf(s.out, "✅ Sample attendance record created with ID: %s\n", attendance.ID)
	return attendance.ID, nil
}

func (s *Seeder) insertFailed(what, collection string, err error) error {
	var writeErr *docstore.WriteError
	if !errors.As(err, &writeErr) {
		err = &docstore.WriteError{Collection: collection, Err: err}
	}
	s.logger.Error("failed to create document", "collection", collection, "error", err)
	fmt.Fprintf(s.out, "❌ Error creating %s: %v\n", what, err)
	return err
}

// DescribeIndexes prints how indexes get created. It makes no database call.
func (s *Seeder) DescribeIndexes() {
	fmt.Fprintf(s.out, "📊 Creating %s indexes...\n", s.label)
	fmt.Fprintln(s.out, "✅ Indexes will be created automatically when queries are run")
	fmt.Fprintf(s.out, "💡 %s\n", indexHint(s.backend))
}

func indexHint(backend string) string {
	switch backend {
	case docstore.BackendPocketBase:
		return "You can also create them manually in PocketBase Admin UI > Collections > Indexes"
	case docstore.BackendMongo:
		return "You can also create them manually with db.<collection>.createIndex() in mongosh"
	case docstore.BackendMemory:
		return "The in-memory store keeps no indexes; nothing to create"
	default:
		return "You can also create them manually in Firebase Console > Firestore > Indexes"
	}
}

// Run seeds every collection in order and prints the summary. The first
// failure aborts the remaining steps; documents already written stay.
func (s *Seeder) Run(ctx context.Context) error {
	defer s.Close()

	if err := s.seed(ctx); err != nil {
		fmt.Fprintf(s.out, "❌ Setup failed: %v\n", err)
		s.notify(fmt.Sprintf("❌ %s seeding failed: %v", s.label, err))
		return err
	}

	fmt.Fprintf(s.out, "✅ %s setup completed successfully!\n", s.label)
	fmt.Fprintln(s.out, "📋 Collections created:")
	for _, name := range models.SeededCollections {
		fmt.Fprintf(s.out, "   - %s\n", name)
	}

	s.logger.Info("seeding completed")
	s.notify(fmt.Sprintf("✅ %s setup completed successfully!\n📋 Collections created: %s",
		s.label, strings.Join(models.SeededCollections, ", ")))
	return nil
}

func (s *Seeder) seed(ctx context.Context) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	studentID, err := s.InsertStudent(ctx)
	if err != nil {
		return err
	}
	if _, err := s.InsertLoginAttempt(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.InsertAttendance(ctx, studentID); err != nil {
		return err
	}

	s.DescribeIndexes()
	return nil
}

func (s *Seeder) notify(message string) {
	if s.notifier != nil {
		s.notifier.SendNotification(message)
	}
}
