// Package models defines the client-side data models of the Farmily CLI:
// herd records, gate credentials, settings keys and theme preferences.
package models
