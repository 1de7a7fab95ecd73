package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
)

type stubSetup struct {
	result *domain.SetupResult
	err    error
	calls  int
}

func (s *stubSetup) Status(context.Context) (*domain.SetupStatus, error) {
	return &domain.SetupStatus{}, nil
}

func (s *stubSetup) Initialize(context.Context) (*domain.SetupResult, error) {
	s.calls++
	return s.result, s.err
}

func TestInitializeDefaultData(t *testing.T) {
	boom := errors.New("db down")
	tests := []struct {
		name    string
		setup   *stubSetup
		wantErr error
	}{
		{"fresh seed", &stubSetup{result: &domain.SetupResult{Initialized: true, Roles: 4, User: 1}}, nil},
		{"already seeded", &stubSetup{result: &domain.SetupResult{Initialized: true, AlreadyExist: true}}, nil},
		{"failure", &stubSetup{err: boom}, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeDefaultData(context.Background(), tt.setup, log.NewNopLogger())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("InitializeDefaultData() error = %v, want %v", err, tt.wantErr)
			}
			if tt.setup.calls != 1 {
				t.Errorf("Initialize called %d times, want 1", tt.setup.calls)
			}
		})
	}
}
