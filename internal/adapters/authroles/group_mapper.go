package authroles

import (
	"strings"

	domainauth "github.com/target/mindful-ui/internal/domain/auth"
)

// GroupRoleMapper elevates members of AdminGroup and treats every other
// authenticated identity as a regular user. Group names compare case-insensitively.
type GroupRoleMapper struct {
	AdminGroup string
}

func (m GroupRoleMapper) Map(groups []string) domainauth.Role {
	admin := strings.TrimSpace(m.AdminGroup)
	if admin == "" {
		return domainauth.RoleUser
	}
	for _, g := range groups {
		if strings.EqualFold(strings.TrimSpace(g), admin) {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleUser
}
