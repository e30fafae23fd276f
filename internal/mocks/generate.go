// Package mocks provides gomock implementations of the ports used across the UI.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "abc").Return(session, nil)
package mocks

// SessionStore persists sessions for the auth service: Save, Get, Delete.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/target/mindful-ui/internal/ports SessionStore

// SessionSource is the per-view session consumed by components: Snapshot, Subscribe, RequestSignOut.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_source_mock.go github.com/target/mindful-ui/internal/ui SessionSource

// NotificationSink receives toasts: Emit.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notification_sink_mock.go github.com/target/mindful-ui/internal/ui NotificationSink
