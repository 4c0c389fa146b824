package domain

// ActorKind tells whether a request was made by a person or a partner credential.
type ActorKind string

const (
	ActorUser      ActorKind = "user"
	ActorAPIClient ActorKind = "api_client"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Actor is the authenticated caller as supplied by the auth middleware.
// It is trusted as given and recorded as the creator of an application.
type Actor struct {
	Kind ActorKind `json:"kind" db:"kind"`
	ID   string    `json:"id" db:"id"`
	Role string    `json:"role,omitempty" db:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Kind == ActorUser && a.Role == RoleAdmin
}

func (k ActorKind) IsValid() bool {
	return k == ActorUser || k == ActorAPIClient
}
