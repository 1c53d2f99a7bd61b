package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/rpggio/pmdash/internal/domain/access"
)

// DemoTokenPrefix prefixes tokens issued by the offline fallback.
const DemoTokenPrefix = "demo_token_"

type demoAccount struct {
	hash []byte
	user User
}

var demoAccounts = sync.OnceValue(func() []demoAccount {
	seed := []struct {
		password string
		user     User
	}{
		{"admin123", User{ID: "1", Email: "admin@dost.gov.ph", Username: "admin", Role: access.RoleAdmin, Department: "DOST Surigao del Norte"}},
		{"manager123", User{ID: "2", Email: "manager@dost.gov.ph", Username: "manager", Role: access.RoleProjectManager, Department: "Project Management"}},
		{"staff123", User{ID: "3", Email: "staff@dost.gov.ph", Username: "staff", Role: access.RoleStaff, Department: "IT Department"}},
	}
	out := make([]demoAccount, 0, len(seed))
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.MinCost)
		if err != nil {
			panic("auth: hashing demo password: " + err.Error())
		}
		out = append(out, demoAccount{hash: hash, user: s.user})
	}
	return out
})

// matchDemo finds the demo account with exactly this email and password.
func matchDemo(accounts []demoAccount, email, password string) (User, bool) {
	for _, a := range accounts {
		if a.user.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil {
			return a.user, true
		}
		return User{}, false
	}
	return User{}, false
}
