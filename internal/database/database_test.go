package database

import (
	"testing"
	"time"

	appconfig "github.com/GTDGit/todopro_api/internal/config"
)

func TestDSN_EscapesCredentials(t *testing.T) {
	got := DSN(&appconfig.DatabaseConfig{
		Host: "db", Port: "5432", User: "todo pro", Password: "p@ss", Name: "todopro", SSLMode: "disable",
	})
	want := "postgres://todo+pro:p%40ss@db:5432/todopro?sslmode=disable"
	if got != want {
		t.Fatalf("DSN = %s, want %s", got, want)
	}
}

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, time.Second},
		{4, 4 * time.Second},
		{5, 5 * time.Second},
	}
	for _, tt := range tests {
		if got := backoff(tt.attempt, 500*time.Millisecond); got != tt.want {
			t.Fatalf("backoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestConnect_NilConfig(t *testing.T) {
	if _, err := Connect(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
