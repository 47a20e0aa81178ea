// Package models contains data structures for the application
package models

import (
	"time"
)

// Collection names. Classes and Faculty are reserved and never written by the seeder.
const (
	CollectionStudents      = "students"
	CollectionLoginAttempts = "loginAttempts"
	CollectionAttendance    = "attendance"
	CollectionClasses       = "classes"
	CollectionFaculty       = "faculty"
)

// SeededCollections lists the collections a run writes to, in write order.
var SeededCollections = []string{
	CollectionStudents,
	CollectionLoginAttempts,
	CollectionAttendance,
}

// EmbeddingSize is the length of a face embedding vector.
const EmbeddingSize = 128

// Student represents a registered student. Server-assigned timestamps
// (signupDate, registeredAt) are not part of the struct; the repository adds them on write.
type Student struct {
	ID          string
	Profile     Profile
	FaceData    FaceData
	Preferences Preferences
}

type Profile struct {
	Email              string `validate:"required,email"`
	Name               string `validate:"required"`
	RegistrationNumber string `validate:"required"`
	FirebaseUID        string
	LastLogin          *time.Time
	IsActive           bool
	Role               string `validate:"required"`
	Department         string
	Year               string
	PhoneNumber        string `validate:"omitempty,e164"`
}

// FaceData holds the face embedding. EmbeddingSize must equal len(Embedding).
type FaceData struct {
	Embedding     []float64 `validate:"required,dive,gte=0,lt=1"`
	EmbeddingSize int       `validate:"gt=0"`
	IsVerified    bool
	Confidence    float64 `validate:"gte=0,lte=1"`
}

type Preferences struct {
	Notifications    bool
	FaceLoginEnabled bool
	Theme            string
}

// LoginAttempt represents a single login attempt
type LoginAttempt struct {
	ID            string
	StudentID     string
	Email         string `validate:"required,email"`
	IPAddress     string `validate:"required,ip"`
	UserAgent     string
	AttemptStatus string  `validate:"required"`
	FailureReason *string // nil on success
	DeviceInfo    DeviceInfo
	Location      Location
}

type DeviceInfo struct {
	Platform string
	Version  string
	Model    string
}

type Location struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Address   string
}

// Attendance represents an attendance record
type Attendance struct {
	ID         string
	StudentID  string
	ClassID    string `validate:"required"`
	ClassName  string
	Status     string  `validate:"required"`
	Method     string  `validate:"required"`
	Confidence float64 `validate:"gte=0,lte=1"`
	Location   Location
	FacultyID  string
	Remarks    string
}

const (
	AttemptStatusSuccess = "success"
	AttemptStatusFailed  = "failed"

	AttendanceStatusPresent = "present"
	MethodFaceRecognition   = "face_recognition"

	RoleStudent = "student"
)
