// Package repository defines repository interfaces for data access
package repository

import (
	"context"

	"face-attendance-seed/internal/models"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	// Create stores a new student and sets student.ID to the generated id
	Create(ctx context.Context, student *models.Student) error
}

// LoginAttemptRepository defines the interface for login attempt data access
type LoginAttemptRepository interface {
	// Create stores a login attempt and sets attempt.ID
	Create(ctx context.Context, attempt *models.LoginAttempt) error
}

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Create records a new attendance entry and sets attendance.ID
	Create(ctx context.Context, attendance *models.Attendance) error
}
