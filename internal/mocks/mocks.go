// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stardrain/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAPIClient is a mock of domain.APIClient.
type MockAPIClient struct {
	mock.Mock
}

// NewMockAPIClient creates a mock that asserts its expectations on cleanup.
func NewMockAPIClient(t testingT) *MockAPIClient {
	m := &MockAPIClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAPIClient) Request(
	ctx context.Context,
	route string,
	params domain.RequestParams,
) (*domain.APIResponse, error) {
	args := m.Called(ctx, route, params)
	var resp *domain.APIResponse
	if v := args.Get(0); v != nil {
		resp = v.(*domain.APIResponse)
	}
	return resp, args.Error(1)
}

// MockAPIClientFactory is a mock of domain.APIClientFactory.
type MockAPIClientFactory struct {
	mock.Mock
}

// NewMockAPIClientFactory creates a mock that asserts its expectations on cleanup.
func NewMockAPIClientFactory(t testingT) *MockAPIClientFactory {
	m := &MockAPIClientFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAPIClientFactory) NewClient(token string) domain.APIClient {
	args := m.Called(token)
	if v := args.Get(0); v != nil {
		return v.(domain.APIClient)
	}
	return nil
}

// MockCredentialReader is a mock of domain.CredentialReader.
type MockCredentialReader struct {
	mock.Mock
}

// NewMockCredentialReader creates a mock that asserts its expectations on cleanup.
func NewMockCredentialReader(t testingT) *MockCredentialReader {
	m := &MockCredentialReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCredentialReader) ReadCredential(
	ctx context.Context,
	label string,
	validate domain.CredentialValidator,
) (string, error) {
	args := m.Called(ctx, label, validate)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialReader) IsInteractive() bool {
	args := m.Called()
	return args.Bool(0)
}
