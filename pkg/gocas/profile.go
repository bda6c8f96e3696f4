package gocas

// Profile is the authenticated identity resulting from a successful ticket
// validation. A session may hold several profiles, one per identity provider
// the user signed into.
type Profile struct {
	// ID is the principal asserted by the identity provider.
	ID string `json:"id" bson:"_id"`
	// Attributes holds the assertion attributes released for the principal.
	Attributes map[string]any `json:"attributes,omitempty" bson:"attributes,omitempty"`
	// ClientName identifies the client that produced the profile, which is
	// later used to route central logout.
	ClientName string `json:"client_name,omitempty" bson:"client_name,omitempty"`
}

func (p *Profile) Attribute(name string) any {
	if p.Attributes == nil {
		return nil
	}
	return p.Attributes[name]
}

// TokenCredentials binds a validated profile to the raw ticket string it was
// obtained with, so downstream code can recover the original token.
type TokenCredentials struct {
	Token   string
	Profile *Profile
}
