// Package mocks provides mock implementations for testing intake use cases and handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lawoffice/intake/internal/intake/domain"
)

// MockSubmissionRepository is a mock implementation of SubmissionRepository for testing.
type MockSubmissionRepository struct {
	mock.Mock
}

// NewMockSubmissionRepository creates a repository mock whose expectations are asserted on cleanup.
func NewMockSubmissionRepository(t mock.TestingT) *MockSubmissionRepository {
	m := &MockSubmissionRepository{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// Create mocks the Create method of SubmissionRepository.
func (m *MockSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// GetByID mocks the GetByID method of SubmissionRepository.
func (m *MockSubmissionRepository) GetByID(ctx context.Context, id int64) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}

// MockSubmissionNotifier is a mock implementation of SubmissionNotifier for testing.
type MockSubmissionNotifier struct {
	mock.Mock
}

// NewMockSubmissionNotifier creates a notifier mock whose expectations are asserted on cleanup.
func NewMockSubmissionNotifier(t mock.TestingT) *MockSubmissionNotifier {
	m := &MockSubmissionNotifier{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// NotifySubmission mocks the NotifySubmission method of SubmissionNotifier.
func (m *MockSubmissionNotifier) NotifySubmission(ctx context.Context, submission *domain.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// MockSubmissionUseCase is a mock implementation of SubmissionUseCase for testing.
type MockSubmissionUseCase struct {
	mock.Mock
}

// NewMockSubmissionUseCase creates a use case mock whose expectations are asserted on cleanup.
func NewMockSubmissionUseCase(t mock.TestingT) *MockSubmissionUseCase {
	m := &MockSubmissionUseCase{}
	m.Test(t)
	if c, ok := t.(interface{ Cleanup(func()) }); ok {
		c.Cleanup(func() { m.AssertExpectations(t) })
	}
	return m
}

// Submit mocks the Submit method of SubmissionUseCase.
func (m *MockSubmissionUseCase) Submit(ctx context.Context, submission *domain.Submission) (domain.Outcome, error) {
	args := m.Called(ctx, submission)
	return args.Get(0).(domain.Outcome), args.Error(1)
}

// Get mocks the Get method of SubmissionUseCase.
func (m *MockSubmissionUseCase) Get(ctx context.Context, id int64) (*domain.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Submission), args.Error(1)
}
