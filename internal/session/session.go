package session

// Role is the backend-assigned role of an authenticated principal.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is the immutable snapshot of the logged-in principal taken at
// login time. It is not refreshed until the next login.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Session is the authentication state for this client. The refresh
// token is persisted alongside the access token but is never used to
// renew it; it is carried for a future renewal path.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// Valid reports whether the session can be trusted: an access token
// with no resolvable user (or the reverse) must be discarded.
func (s Session) Valid() bool {
	return s.AccessToken != "" && s.User != (User{})
}

// Store is durable key-value persistence of exactly three keys: the
// access token, the refresh token, and the serialized user snapshot.
//
// Implementations never propagate malformed state: Load downgrades a
// missing token or an undecodable user snapshot to absent, clearing
// the backing keys in the latter case so the next load does not trip
// over the same corruption.
type Store interface {
	Save(s Session) error
	Load() (Session, bool)
	Clear() error
}

const (
	keyToken        = "token"
	keyRefreshToken = "refreshToken"
	keyUser         = "user"
)
