package repository

import (
	"context"
	"sort"
	"time"

	"face-attendance-seed/internal/docstore"
	"face-attendance-seed/internal/models"
)

// DocStoreStudentRepository implements StudentRepository
type DocStoreStudentRepository struct {
	store docstore.Store
}

func NewDocStoreStudentRepository(store docstore.Store) *DocStoreStudentRepository {
	return &DocStoreStudentRepository{store: store}
}

func (r *DocStoreStudentRepository) Create(ctx context.Context, student *models.Student) error {
	return create(ctx, r.store, models.CollectionStudents, student, studentDocument(student), &student.ID)
}

// DocStoreLoginAttemptRepository implements LoginAttemptRepository
type DocStoreLoginAttemptRepository struct {
	store docstore.Store
}

func NewDocStoreLoginAttemptRepository(store docstore.Store) *DocStoreLoginAttemptRepository {
	return &DocStoreLoginAttemptRepository{store: store}
}

func (r *DocStoreLoginAttemptRepository) Create(ctx context.Context, attempt *models.LoginAttempt) error {
	return create(ctx, r.store, models.CollectionLoginAttempts, attempt, loginAttemptDocument(attempt), &attempt.ID)
}

// DocStoreAttendanceRepository implements AttendanceRepository
type DocStoreAttendanceRepository struct {
	store docstore.Store
}

func NewDocStoreAttendanceRepository(store docstore.Store) *DocStoreAttendanceRepository {
	return &DocStoreAttendanceRepository{store: store}
}

func (r *DocStoreAttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return create(ctx, r.store, models.CollectionAttendance, attendance, attendanceDocument(attendance), &attendance.ID)
}

// create validates record, writes doc and stores the generated id in id.
func create(ctx context.Context, store docstore.Store, collection string, record any, doc docstore.Document, id *string) error {
	if err := models.Validate(record); err != nil {
		return &docstore.WriteError{Collection: collection, Err: err}
	}
	newID, err := store.Add(ctx, collection, doc)
	if err != nil {
		return err
	}
	*id = newID
	return nil
}

func studentDocument(s *models.Student) docstore.Document {
	embedding := make([]float64, len(s.FaceData.Embedding))
	copy(embedding, s.FaceData.Embedding)

	return docstore.Document{
		"profile": docstore.Document{
			"email":              s.Profile.Email,
			"name":               s.Profile.Name,
			"registrationNumber": s.Profile.RegistrationNumber,
			"firebaseUid":        s.Profile.FirebaseUID,
			"signupDate":         docstore.ServerTimestamp,
			"lastLogin":          optionalTime(s.Profile.LastLogin),
			"isActive":           s.Profile.IsActive,
			"role":               s.Profile.Role,
			"department":         s.Profile.Department,
			"year":               s.Profile.Year,
			"phoneNumber":        s.Profile.PhoneNumber,
		},
		"faceData": docstore.Document{
			"embedding":     embedding,
			"embeddingSize": s.FaceData.EmbeddingSize,
			"registeredAt":  docstore.ServerTimestamp,
			"isVerified":    s.FaceData.IsVerified,
			"confidence":    s.FaceData.Confidence,
		},
		"preferences": docstore.Document{
			"notifications":    s.Preferences.Notifications,
			"faceLoginEnabled": s.Preferences.FaceLoginEnabled,
			"theme":            s.Preferences.Theme,
		},
	}
}

func loginAttemptDocument(a *models.LoginAttempt) docstore.Document {
	var failureReason any
	if a.FailureReason != nil {
		failureReason = *a.FailureReason
	}

	return docstore.Document{
		"studentId":     a.StudentID,
		"email":         a.Email,
		"ipAddress":     a.IPAddress,
		"userAgent":     a.UserAgent,
		"attemptStatus": a.AttemptStatus,
		"failureReason": failureReason,
		"attemptedAt":   docstore.ServerTimestamp,
		"deviceInfo": docstore.Document{
			"platform": a.DeviceInfo.Platform,
			"version":  a.DeviceInfo.Version,
			"model":    a.DeviceInfo.Model,
		},
		"location": locationDocument(a.Location),
	}
}

func attendanceDocument(a *models.Attendance) docstore.Document {
	return docstore.Document{
		"studentId":      a.StudentID,
		"classId":        a.ClassID,
		"className":      a.ClassName,
		"attendanceDate": docstore.ServerTimestamp,
		"status":         a.Status,
		"method":         a.Method,
		"confidence":     a.Confidence,
		"location":       locationDocument(a.Location),
		"facultyId":      a.FacultyID,
		"remarks":        a.Remarks,
	}
}

func locationDocument(l models.Location) docstore.Document {
	return docstore.Document{
		"latitude":  l.Latitude,
		"longitude": l.Longitude,
		"address":   l.Address,
	}
}

// optionalTime keeps nil as nil so the field is stored as null.
func optionalTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// DocumentFields returns the sorted top-level keys written to collection,
// or nil for a collection no repository writes.
func DocumentFields(collection string) []string {
	var doc docstore.Document
	switch collection {
	case models.CollectionStudents:
		doc = studentDocument(&models.Student{})
	case models.CollectionLoginAttempts:
		doc = loginAttemptDocument(&models.LoginAttempt{})
	case models.CollectionAttendance:
		doc = attendanceDocument(&models.Attendance{})
	default:
		return nil
	}

	fields := make([]string, 0, len(doc))
	for key := range doc {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}
