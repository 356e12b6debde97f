package storage

import "github.com/mglaser/bankdesk/internal/types"

// Store defines the call archive interface
type Store interface {
	SaveArchivedCall(record types.ArchivedCall) error
	GetArchivedCalls(dateKey string) ([]types.ArchivedCall, error)
	GetCustomerCallsByDate(customerID, date string) ([]types.ArchivedCall, error)
	TruncateAll() error
}

// NoopStore is a no-op implementation when DynamoDB is disabled
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) SaveArchivedCall(_ types.ArchivedCall) error { return nil }
func (s *NoopStore) GetArchivedCalls(_ string) ([]types.ArchivedCall, error) {
	return nil, nil
}
func (s *NoopStore) GetCustomerCallsByDate(_, _ string) ([]types.ArchivedCall, error) {
	return nil, nil
}
func (s *NoopStore) TruncateAll() error { return nil }
