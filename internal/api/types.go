package api

// Wire records exchanged verbatim with the backend. These are pure
// data-transfer shapes; the client enforces no invariants on them.

// EventStatus is the backend's lifecycle state for an event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// InvitationStatus tracks whether a user's invitation has gone out.
type InvitationStatus string

const (
	InvitationReady InvitationStatus = "READY"
	InvitationSent  InvitationStatus = "SENT"
)

// RegistrationStatus is a registered attendee's state on an event.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "REGISTERED"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
)

// Event is a single event row as listed by GET /event. Date and time
// fields are ISO strings passed through untouched.
type Event struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	EventDate        string      `json:"eventDate"`
	StartTime        string      `json:"startTime"`
	EndTime          string      `json:"endTime"`
	Address          string      `json:"address"`
	EventType        string      `json:"eventType"`
	EventStatus      EventStatus `json:"eventStatus"`
	OrganizerName    string      `json:"organizerName"`
	OrganizerContact string      `json:"organizerContact"`
	ImageURL         string      `json:"imageUrl,omitempty"`
}

// RegisteredUser is an attendee entry in an event's details.
type RegisteredUser struct {
	ID                 int                `json:"id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	Mobile             string             `json:"mobile"`
	RegistrationStatus RegistrationStatus `json:"registrationStatus"`
	RegistrationDate   string             `json:"registrationDate"`
}

// EventDetails is the full event record including its attendees.
type EventDetails struct {
	Event
	RegisteredUsers []RegisteredUser `json:"registeredUsers"`
}

// User is a managed account as returned by the admin endpoints.
type User struct {
	ID           int              `json:"id"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	Mobile       *string          `json:"mobile"`
	Role         string           `json:"role"`
	Invitation   InvitationStatus `json:"invitation,omitempty"`
	CreatedBy    string           `json:"createdBy,omitempty"`
	CreatedAt    string           `json:"createdAt,omitempty"`
	UpdatedBy    string           `json:"updatedBy,omitempty"`
	UpdatedAt    string           `json:"updatedAt,omitempty"`
	IsFirstLogin bool             `json:"isFirstLogin,omitempty"`
}

// ListEventsParams are the query parameters of GET /event.
type ListEventsParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// DefaultPageSize matches the dashboard's card grid.
const DefaultPageSize = 6

// EventPage is one page of the events listing. On failure the client
// returns an empty page whose Message says why.
type EventPage struct {
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
	Events     []Event `json:"events"`
	Message    string  `json:"message"`
}

// UpsertEventInput creates an event, or updates one when ID is set.
type UpsertEventInput struct {
	ID               int         `json:"id,omitempty"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	EventDate        string      `json:"eventDate"`
	StartTime        string      `json:"startTime"`
	EndTime          string      `json:"endTime"`
	Address          string      `json:"address"`
	EventType        string      `json:"eventType"`
	EventStatus      EventStatus `json:"eventStatus,omitempty"`
	OrganizerName    string      `json:"organizerName"`
	OrganizerContact string      `json:"organizerContact"`
	ImageURL         string      `json:"imageUrl,omitempty"`
}

// UpsertUserInput creates a user, or updates one when ID is set.
// Password is only sent when set.
type UpsertUserInput struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// UpsertResult is the backend's acknowledgement of a write.
type UpsertResult struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// AuthUser is the principal snapshot inside a login response.
type AuthUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResult is the normalized outcome of a successful login,
// regardless of whether the backend nested the payload under "data".
type LoginResult struct {
	User         AuthUser
	AccessToken  string
	RefreshToken string
}
