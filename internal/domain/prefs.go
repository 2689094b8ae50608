package domain

// Prefs holds a chat's declared filtering preferences. Owned by the bot layer;
// the recommendation engine never sees these.
type Prefs struct {
	Difficulty      string
	CertificateType string
}
