package session

import (
	"net/http"
)

// CookieName is the name of the session cookie.
const CookieName = "cashify_session"

// FromRequest returns the live session named by the request cookie.
func (st *Store) FromRequest(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return st.Get(c.Value)
}

// Rotate replaces the request's session with a fresh one. Called on login
// so a session id seen before authentication is never reused after it.
func (st *Store) Rotate(w http.ResponseWriter, r *http.Request, secure bool) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		st.Delete(c.Value)
	}
	return st.issue(w, secure)
}

func (st *Store) issue(w http.ResponseWriter, secure bool) *Session {
	sess := st.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Expire drops the request's session and tells the browser to forget it.
func (st *Store) Expire(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		st.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
