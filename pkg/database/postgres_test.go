package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/mergington-activities-api/pkg/config"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "teacher",
		Password: "p@ss word",
		Name:     "mergington_high",
		SSLMode:  "disable",
	})
	assert.Equal(t, "postgres://teacher:p%40ss%20word@db:5432/mergington_high?sslmode=disable", dsn)
}
