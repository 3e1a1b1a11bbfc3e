package models

// AppendRequest represents the inputs of one append or commit invocation
type AppendRequest struct {
	Message             string
	MessageFile         string
	Target              string
	ForceInteractive    bool
	ForceNonInteractive bool
	OfferCreate         bool
}

// NewAppendRequest creates a request with defaults applied
func NewAppendRequest() *AppendRequest {
	return &AppendRequest{OfferCreate: true}
}

// Mode returns the requested selection override: "interactive",
// "automatic", or "" to follow the config's manual flag
func (r *AppendRequest) Mode() string {
	switch {
	case r.ForceInteractive:
		return "interactive"
	case r.ForceNonInteractive:
		return "automatic"
	default:
		return ""
	}
}
