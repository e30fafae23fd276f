package ports_test

import (
	"testing"

	"github.com/target/mindful-ui/internal/adapters/redis"
	mocks "github.com/target/mindful-ui/internal/mocks/auth"
	"github.com/target/mindful-ui/internal/ports"
)

// This test only verifies that our doubles and adapters conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthProvider = (*mocks.MockAuthProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.SessionLister = (*mocks.MemorySessionStore)(nil)
	var _ ports.RoleMapper = (*mocks.StaticRoleMapper)(nil)

	var _ ports.SessionStore = (*redis.SessionStore)(nil)
	var _ ports.SessionLister = (*redis.SessionStore)(nil)
}
