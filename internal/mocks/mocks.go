// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"concatfiles/internal/domain"
)

// MockConcatenator is a mock implementation of domain.Concatenator.
type MockConcatenator struct {
	mock.Mock
}

// NewMockConcatenator creates a mock that asserts its expectations on cleanup.
func NewMockConcatenator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConcatenator {
	m := &MockConcatenator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Concatenate provides a mock function.
func (m *MockConcatenator) Concatenate(ctx context.Context, cfg domain.Config) (domain.Result, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(domain.Result), args.Error(1)
}

// MockSummaryPrinter is a mock implementation of domain.SummaryPrinter.
type MockSummaryPrinter struct {
	mock.Mock
}

// NewMockSummaryPrinter creates a mock that asserts its expectations on cleanup.
func NewMockSummaryPrinter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSummaryPrinter {
	m := &MockSummaryPrinter{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Summary provides a mock function.
func (m *MockSummaryPrinter) Summary(result domain.Result) error {
	args := m.Called(result)
	return args.Error(0)
}

// MockConfigLoader is a mock implementation of domain.ConfigLoader.
type MockConfigLoader struct {
	mock.Mock
}

// NewMockConfigLoader creates a mock that asserts its expectations on cleanup.
func NewMockConfigLoader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockConfigLoader {
	m := &MockConfigLoader{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// LoadFile provides a mock function.
func (m *MockConfigLoader) LoadFile(path string) (domain.Config, error) {
	args := m.Called(path)
	return args.Get(0).(domain.Config), args.Error(1)
}
