package domain

import "time"

//region CredentialsMismatchError

type CredentialsMismatchError struct {
	Msg      string
	Username string
}

func (e *CredentialsMismatchError) Error() string {
	return e.Msg
}

func (e *CredentialsMismatchError) Is(target error) bool {
	_, ok := target.(*CredentialsMismatchError)
	return ok
}

//endregion

//region SessionInvalidError

type SessionInvalidError struct {
	Msg       string
	SessionID string
}

func (e *SessionInvalidError) Error() string {
	return e.Msg
}

func (e *SessionInvalidError) Is(target error) bool {
	_, ok := target.(*SessionInvalidError)
	return ok
}

//endregion

//region TooManyAttemptsError

type TooManyAttemptsError struct {
	Msg        string
	Username   string
	RetryAfter time.Duration
}

func (e *TooManyAttemptsError) Error() string {
	return e.Msg
}

func (e *TooManyAttemptsError) Is(target error) bool {
	_, ok := target.(*TooManyAttemptsError)
	return ok
}

//endregion
