package session

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"recruitflow-go/internal/platform/errors"
)

// Session is the locally held credential state. One live Session exists per
// Client; it is populated on login or refresh and cleared on logout or an
// irrecoverable refresh failure.
type Session struct {
	Access  string         `json:"access,omitempty"`
	Refresh string         `json:"refresh,omitempty"`
	CSRF    string         `json:"csrf,omitempty"`
	User    map[string]any `json:"user,omitempty"`
}

// Authenticated reports whether an access token is held.
func (s *Session) Authenticated() bool {
	return s != nil && s.Access != ""
}

// Store persists the session between runs, the client-side analogue of
// browser storage. An empty path disables persistence.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads a previously saved session. A missing file yields an empty
// session, not an error.
func (st *Store) Load() (*Session, error) {
	if st.path == "" {
		return &Session{}, nil
	}

	data, err := os.ReadFile(st.path)
	if os.IsNotExist(err) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.KindConfig, "session.load", "read credentials file", err)
	}

	var sess Session
	if err := sonic.Unmarshal(data, &sess); err != nil {
		// a corrupt file is treated like no session at all
		return &Session{}, nil
	}
	return &sess, nil
}

// Save writes the session atomically with owner-only permissions.
func (st *Store) Save(sess *Session) error {
	if st.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return errors.Wrap(errors.KindConfig, "session.save", "create credentials dir", err)
	}

	data, err := sonic.Marshal(sess)
	if err != nil {
		return errors.Wrap(errors.KindConfig, "session.save", "encode session", err)
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.KindConfig, "session.save", "write credentials file", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.KindConfig, "session.save", "replace credentials file", err)
	}
	return nil
}

// Clear removes the persisted session.
func (st *Store) Clear() error {
	if st.path == "" {
		return nil
	}
	err := os.Remove(st.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.KindConfig, "session.clear", "remove credentials file", err)
	}
	return nil
}
