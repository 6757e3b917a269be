package biprws

import (
	"context"
	"fmt"
	"strings"
)

// DefaultAuthMode is the authentication backend used when a credential
// does not name one. "secWinAD" is Windows AD, the common enterprise
// setup; "secEnterprise" and "secLDAP" are the usual alternatives.
const DefaultAuthMode = "secWinAD"

// Credential identifies a BI platform user. The secret is opaque to this
// package beyond being sent in the logon body.
type Credential struct {
	Username string
	Password string

	// AuthMode selects the authentication backend. Empty means
	// DefaultAuthMode.
	AuthMode string
}

type logonRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
	Auth     string `json:"auth"`
}

type logonResponse struct {
	LogonToken string `json:"logonToken"`
}

// Logon authenticates against {base}/logon/long and returns the session
// token. The token must be passed to every other call and revoked with
// Logoff when the caller is done; this package never revokes or
// refreshes it on its own.
//
// Some legacy BIPRWS clients wrap the token in literal double quotes
// before reuse. The raw token works in the X-SAP-Logontoken header, so
// the returned value is unwrapped.
func (c *Client) Logon(ctx context.Context, cred Credential) (string, error) {
	mode := cred.AuthMode
	if mode == "" {
		mode = DefaultAuthMode
	}
	payload := logonRequest{
		UserName: cred.Username,
		Password: cred.Password,
		Auth:     mode,
	}

	url := c.baseURL + "/logon/long"
	var resp logonResponse
	if err := c.postJSON(ctx, "", url, payload, &resp); err != nil {
		return "", fmt.Errorf("logon for user %q: %w", cred.Username, err)
	}

	token := strings.Trim(resp.LogonToken, `"`)
	if token == "" {
		return "", &ParseError{URL: url, Err: fmt.Errorf("logon response carries no logonToken")}
	}
	return token, nil
}

// Logoff invalidates a session token via {base}/logoff. The token must
// not be used afterwards.
func (c *Client) Logoff(ctx context.Context, token string) error {
	url := c.baseURL + "/logoff"
	if err := c.postJSON(ctx, token, url, nil, nil); err != nil {
		return fmt.Errorf("logoff: %w", err)
	}
	return nil
}
