package models

// NavLinks is the singleton navbar configuration: document URLs for the
// schedule and awards links. An empty value is served when no config
// object exists yet.
type NavLinks struct {
	Orar   string `json:"orar"`
	Premii string `json:"premii"`
}
