package domain

// Session is the process-wide authentication state. Exactly one instance
// exists; it is owned by the session store and mutated only through it.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
	Theme string `json:"theme,omitempty"`
}

// Valid reports whether the session carries a credential. Absence of a
// session is a normal state, not an error.
func (s Session) Valid() bool {
	return s.Token != ""
}
