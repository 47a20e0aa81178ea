// Package fixtures holds the fixed sample records written by the seeder.
package fixtures

import (
	"math/rand/v2"

	"face-attendance-seed/internal/models"
)

// PlaceholderEmbedding returns size pseudo-random values in [0,1).
// It stands in for a face embedding; nothing here computes a real one.
func PlaceholderEmbedding(rng *rand.Rand, size int) []float64 {
	embedding := make([]float64, size)
	for i := range embedding {
		embedding[i] = rng.Float64()
	}
	return embedding
}

// SampleStudent builds the sample student with a fresh placeholder embedding.
func SampleStudent(rng *rand.Rand) models.Student {
	return models.Student{
		Profile: models.Profile{
			Email:              "sample@klu.ac.in",
			Name:               "Sample Student",
			RegistrationNumber: "99220041389",
			FirebaseUID:        "sample_firebase_uid",
			LastLogin:          nil,
			IsActive:           true,
			Role:               models.RoleStudent,
			Department:         "Computer Science",
			Year:               "2024",
			PhoneNumber:        "+1234567890",
		},
		FaceData: models.FaceData{
			Embedding:     PlaceholderEmbedding(rng, models.EmbeddingSize),
			EmbeddingSize: models.EmbeddingSize,
			IsVerified:    true,
			Confidence:    0.95,
		},
		Preferences: models.Preferences{
			Notifications:    true,
			FaceLoginEnabled: true,
			Theme:            "dark",
		},
	}
}

// SampleLoginAttempt builds a successful login attempt for studentID.
func SampleLoginAttempt(studentID string) models.LoginAttempt {
	return models.LoginAttempt{
		StudentID:     studentID,
		Email:         "sample@klu.ac.in",
		IPAddress:     "192.168.1.100",
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		AttemptStatus: models.AttemptStatusSuccess,
		FailureReason: nil,
		DeviceInfo: models.DeviceInfo{
			Platform: "Android",
			Version:  "13",
			Model:    "Samsung Galaxy S21",
		},
		Location: models.Location{
			Latitude:  17.3850,
			Longitude: 78.4867,
			Address:   "Hyderabad, India",
		},
	}
}

// SampleAttendance builds a face-recognition attendance record for studentID.
func SampleAttendance(studentID string) models.Attendance {
	return models.Attendance{
		StudentID:  studentID,
		ClassID:    "CS101_2024",
		ClassName:  "Data Structures",
		Status:     models.AttendanceStatusPresent,
		Method:     models.MethodFaceRecognition,
		Confidence: 0.92,
		Location: models.Location{
			Latitude:  17.3850,
			Longitude: 78.4867,
			Address:   "KLU Campus, Hyderabad",
		},
		FacultyID: "faculty_001",
		Remarks:   "On time attendance",
	}
}
