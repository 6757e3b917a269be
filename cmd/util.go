package cmd

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/roobyn/sap-bi/pkg/biprws"
)

// openSession resolves the credential and logs on. The returned teardown
// revokes the token exactly once; a failing logoff is logged but never
// turns a finished scan into a failure.
func openSession(ctx context.Context, cli *biprws.Client) (string, func(), error) {
	cred, err := f.GetCredential(cli.BaseURL())
	if err != nil {
		return "", nil, err
	}

	log.Debug().Msgf("logging on to %s as %q", cli.BaseURL(), cred.Username)
	token, err := cli.Logon(ctx, cred)
	if err != nil {
		return "", nil, err
	}

	teardown := func() {
		if err := cli.Logoff(ctx, token); err != nil {
			log.Warn().Msgf("%s failed to log off: %v", redCross, err)
			return
		}
		log.Debug().Msg("session token revoked")
	}
	return token, teardown, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
