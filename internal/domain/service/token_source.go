package service

// ConfirmationTokenSource produces the opaque tokens that key pending
// registrations. Abstracted so tests can pin token values.
type ConfirmationTokenSource interface {
	// Generate returns a new unguessable token.
	Generate() (string, error)
}
