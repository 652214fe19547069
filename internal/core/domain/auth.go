package domain

// Credentials carries the username/password pair submitted to a strategy.
type Credentials struct {
	Username string
	Password string
}

// Failure reasons reported by the authentication strategies. These are
// user-visible outcomes, distinct from infrastructure errors.
const (
	ReasonUserExists      = "user exists"
	ReasonUserNotFound    = "user not found"
	ReasonInvalidPassword = "invalid password"
)

// Outcome is the result of a strategy verification. Exactly one of the three
// shapes applies: Success carries a user, Failure carries a reason, and Error
// carries an infrastructure cause.
type Outcome struct {
	User   *User
	Reason string
	Err    error
}

// Success builds an outcome for a verified principal.
func Success(u *User) Outcome {
	return Outcome{User: u}
}

// Failure builds a user-visible rejection (bad credentials, duplicate user).
func Failure(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Errored builds an outcome for an infrastructure failure (store unreachable).
func Errored(err error) Outcome {
	return Outcome{Err: err}
}

// Succeeded reports whether the outcome established a principal.
func (o Outcome) Succeeded() bool {
	return o.User != nil && o.Err == nil
}
