// Package auth decides who may administer the site and carries that decision between requests.
package auth

import "strings"

// AdminPolicy is the set of email addresses allowed into the admin area.
// The zero value denies everyone.
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy builds a policy from a list of addresses. Matching ignores case and surrounding space.
func NewAdminPolicy(emails []string) AdminPolicy {
	policy := AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, email := range emails {
		if normalized := normalizeEmail(email); normalized != "" {
			policy.emails[normalized] = struct{}{}
		}
	}
	return policy
}

// Allows reports whether email belongs to an administrator.
func (p AdminPolicy) Allows(email string) bool {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return false
	}
	_, ok := p.emails[normalized]
	return ok
}

// Len returns how many addresses the policy admits.
func (p AdminPolicy) Len() int {
	return len(p.emails)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
