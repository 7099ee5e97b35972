package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cursos.s3.eu-west-1.amazonaws.com",
		PublicBaseURL(S3Config{Bucket: "cursos", Region: "eu-west-1"}))
	assert.Equal(t, "http://localhost:9000/cursos",
		PublicBaseURL(S3Config{Bucket: "cursos", Endpoint: "http://localhost:9000/"}))
}

func TestS3Storage_URL(t *testing.T) {
	s := &S3Storage{publicURL: "http://localhost:9000/cursos"}
	assert.Equal(t, "http://localhost:9000/cursos/cursos/a.png", s.URL("/cursos/a.png"))
}
