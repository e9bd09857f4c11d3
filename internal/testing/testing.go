// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/fluentctl/internal/models"
)

// MockService is a configurable test double for [services.Service].
//
// Unset function fields return zero values without error.
type MockService struct {
	GetContactFunc       func(ctx context.Context, ref models.ContactRef) (*models.Contact, error)
	CreateContactFunc    func(ctx context.Context, in models.NewContact) (any, error)
	DeleteContactFunc    func(ctx context.Context, id int64) (any, error)
	UpdateSubscriberFunc func(ctx context.Context, id int64, patch models.SubscriberPatch) (any, error)
	TagsFunc             func(ctx context.Context) ([]models.Taxonomy, error)
	CreateTagFunc        func(ctx context.Context, title, slug string) (any, error)
	DeleteTagFunc        func(ctx context.Context, id int64) (any, error)
	ListsFunc            func(ctx context.Context) ([]models.Taxonomy, error)
	CreateListFunc       func(ctx context.Context, title, slug string) (any, error)
	UpdateListFunc       func(ctx context.Context, id int64, title, slug string) (any, error)
	DeleteListFunc       func(ctx context.Context, id int64) (any, error)
}

func (m *MockService) GetContact(ctx context.Context, ref models.ContactRef) (*models.Contact, error) {
	if m.GetContactFunc != nil {
		return m.GetContactFunc(ctx, ref)
	}
	return &models.Contact{}, nil
}

func (m *MockService) CreateContact(ctx context.Context, in models.NewContact) (any, error) {
	if m.CreateContactFunc != nil {
		return m.CreateContactFunc(ctx, in)
	}
	return nil, nil
}

func (m *MockService) DeleteContact(ctx context.Context, id int64) (any, error) {
	if m.DeleteContactFunc != nil {
		return m.DeleteContactFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockService) UpdateSubscriber(ctx context.Context, id int64, patch models.SubscriberPatch) (any, error) {
	if m.UpdateSubscriberFunc != nil {
		return m.UpdateSubscriberFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockService) Tags(ctx context.Context) ([]models.Taxonomy, error) {
	if m.TagsFunc != nil {
		return m.TagsFunc(ctx)
	}
	return []models.Taxonomy{}, nil
}

func (m *MockService) CreateTag(ctx context.Context, title, slug string) (any, error) {
	if m.CreateTagFunc != nil {
		return m.CreateTagFunc(ctx, title, slug)
	}
	return nil, nil
}

func (m *MockService) DeleteTag(ctx context.Context, id int64) (any, error) {
	if m.DeleteTagFunc != nil {
		return m.DeleteTagFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockService) Lists(ctx context.Context) ([]models.Taxonomy, error) {
	if m.ListsFunc != nil {
		return m.ListsFunc(ctx)
	}
	return []models.Taxonomy{}, nil
}

func (m *MockService) CreateList(ctx context.Context, title, slug string) (any, error) {
	if m.CreateListFunc != nil {
		return m.CreateListFunc(ctx, title, slug)
	}
	return nil, nil
}

func (m *MockService) UpdateList(ctx context.Context, id int64, title, slug string) (any, error) {
	if m.UpdateListFunc != nil {
		return m.UpdateListFunc(ctx, id, title, slug)
	}
	return nil, nil
}

func (m *MockService) DeleteList(ctx context.Context, id int64) (any, error) {
	if m.DeleteListFunc != nil {
		return m.DeleteListFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
