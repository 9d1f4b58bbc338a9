package model

import "strings"

// Separator splits the fields of a credential descriptor (email#password[#host]).
const Separator = "#"

// Account is one parsed account descriptor.
type Account struct {
	Raw      string // descriptor as configured
	Email    string
	Password string
	Host     string // per-account host override, may be empty
	Cookie   string // set when the descriptor is a bare cookie
}

// ParseAccount interprets a trimmed descriptor. A descriptor without a
// separator is a pre-obtained cookie string.
func ParseAccount(desc string) Account {
	desc = strings.TrimSpace(desc)
	if !strings.Contains(desc, Separator) {
		return Account{Raw: desc, Cookie: desc}
	}

	parts := strings.SplitN(desc, Separator, 3)
	a := Account{Raw: desc, Email: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		a.Password = parts[1]
	}
	if len(parts) > 2 {
		a.Host = strings.TrimRight(strings.TrimSpace(parts[2]), "/")
	}
	// "cookie#" with an empty password still means a raw cookie.
	if a.Password == "" {
		a.Cookie = a.Email
		a.Email = ""
	}
	return a
}

// HasCredentials reports whether the account logs in with email and password.
func (a Account) HasCredentials() bool {
	return a.Email != "" && a.Password != ""
}

// Label is a log-safe identifier for the account.
func (a Account) Label() string {
	if a.Email != "" {
		return a.Email
	}
	if len(a.Cookie) > 12 {
		return a.Cookie[:12] + "..."
	}
	return a.Cookie
}
