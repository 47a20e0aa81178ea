package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func validStudent() Student {
	embedding := make([]float64, EmbeddingSize)
	for i := range embedding {
		embedding[i] = 0.5
	}
	return Student{
		Profile: Profile{
			Email:              "sample@klu.ac.in",
			Name:               "Sample Student",
			RegistrationNumber: "99220041389",
			Role:               RoleStudent,
			PhoneNumber:        "+1234567890",
		},
		FaceData: FaceData{
			Embedding:     embedding,
			EmbeddingSize: EmbeddingSize,
			Confidence:    0.95,
		},
	}
}

func TestValidateStudent(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Student)
		wantErr string
	}{
		{name: "valid", mutate: func(s *Student) {}},
		{name: "bad email", mutate: func(s *Student) { s.Profile.Email = "not-an-email" }, wantErr: "Email"},
		{name: "size mismatch", mutate: func(s *Student) { s.FaceData.EmbeddingSize = 64 }, wantErr: "EmbeddingSize"},
		{name: "short embedding", mutate: func(s *Student) { s.FaceData.Embedding = s.FaceData.Embedding[:10] }, wantErr: "EmbeddingSize"},
		{name: "element out of range", mutate: func(s *Student) { s.FaceData.Embedding[3] = 1.0 }, wantErr: "Embedding[3]"},
		{name: "confidence above one", mutate: func(s *Student) { s.FaceData.Confidence = 1.2 }, wantErr: "Confidence"},
		{name: "empty embedding", mutate: func(s *Student) { s.FaceData.Embedding = nil; s.FaceData.EmbeddingSize = 0 }, wantErr: "Embedding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validStudent()
			tt.mutate(&s)

			err := Validate(s)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateLoginAttemptAndAttendance(t *testing.T) {
	attempt := LoginAttempt{
		StudentID:     "anything goes",
		Email:         "sample@klu.ac.in",
		IPAddress:     "192.168.1.100",
		AttemptStatus: AttemptStatusSuccess,
		Location:      Location{Latitude: 17.3850, Longitude: 78.4867},
	}
	require.NoError(t, Validate(attempt))

	attempt.IPAddress = "999.1.1.1"
	require.ErrorContains(t, Validate(attempt), "IPAddress")

	attendance := Attendance{
		StudentID:  "",
		ClassID:    "CS101_2024",
		Status:     AttendanceStatusPresent,
		Method:     MethodFaceRecognition,
		Confidence: 0.92,
		Location:   Location{Latitude: 17.3850, Longitude: 78.4867},
	}
	require.NoError(t, Validate(attendance))

	attendance.Location.Latitude = 91
	require.ErrorContains(t, Validate(attendance), "Latitude")
}
