package models

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(faceDataStructLevel, FaceData{})
	})
	return validate
}

// faceDataStructLevel enforces embeddingSize == len(embedding).
func faceDataStructLevel(sl validator.StructLevel) {
	fd := sl.Current().Interface().(FaceData)
	if fd.EmbeddingSize != len(fd.Embedding) {
		sl.ReportError(fd.EmbeddingSize, "EmbeddingSize", "EmbeddingSize", "eqlen", fmt.Sprint(len(fd.Embedding)))
	}
}

// Validate checks a record against its struct tags before it is written.
func Validate(record any) error {
	if err := getValidator().Struct(record); err != nil {
		return fmt.Errorf("invalid %T: %w", record, err)
	}
	return nil
}
