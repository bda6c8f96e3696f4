package gocas

const (
	// ParamTicket is the query parameter carrying the service ticket on the
	// callback request.
	ParamTicket = "ticket"
	// ParamService is the query parameter carrying the service URL on
	// redirects to the identity provider.
	ParamService = "service"
	ParamRenew   = "renew"
	ParamGateway = "gateway"
	// ParamURL is the request parameter naming the post logout redirect
	// target.
	ParamURL = "url"
	// ParamLogoutRequest carries an identity provider initiated logout
	// message, raw on the back channel and deflated plus base64 encoded on
	// the front channel.
	ParamLogoutRequest = "logoutRequest"
	ParamRelayState    = "RelayState"
	ParamProxyIOU      = "pgtIou"
	ParamProxyID       = "pgtId"
	ParamProxyCallback = "pgtUrl"
)

const (
	// DefaultLogoutURLPattern only allows relative URLs, which keeps post
	// logout redirects on the same origin.
	DefaultLogoutURLPattern = "^(/[^/].*)?$"
)

type Protocol string

const (
	ProtocolCAS10      Protocol = "CAS10"
	ProtocolCAS20      Protocol = "CAS20"
	ProtocolCAS20Proxy Protocol = "CAS20_PROXY"
	ProtocolCAS30      Protocol = "CAS30"
	ProtocolCAS30Proxy Protocol = "CAS30_PROXY"
	ProtocolSAML       Protocol = "SAML"
)

func (p Protocol) IsProxy() bool {
	return p == ProtocolCAS20Proxy || p == ProtocolCAS30Proxy
}
