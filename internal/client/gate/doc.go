// Package gate talks to the remote gate endpoint.
//
// A single GET carries device, locale and attribution metadata as query
// parameters (p, os, lng, devicemodel, country, appsflyerid). The endpoint
// answers with a plain text body "<token>#<url>"; the body is split on the
// first '#', so a fragment inside the URL survives.
//
// FetchGate makes exactly one attempt and has no persistence side effects.
// Failures are reported as one of ErrInvalidRequestURL, ErrTransport or
// ErrMalformedResponse; match them with errors.Is.
package gate
