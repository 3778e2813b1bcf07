package fixtures

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockFetcher implements repository.Fetcher for testing.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	args := m.Called(ctx, url, cookie)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFetcher) FetchVideo(ctx context.Context, videoID string) ([]byte, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).([]byte), args.Error(1)
}
