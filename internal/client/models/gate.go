package models

// GateCredential is the pair returned by the remote gate: an opaque token
// and the content URL to show instead of the native UI.
type GateCredential struct {
	Token      string
	ContentURL string
}
