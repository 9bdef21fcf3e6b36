// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: dev@stockroom.app

package auth

import (
	stdctx "context"
	"errors"
	"log/slog"
	"time"

	"github.com/stockroomhq/stockroom/internal/platform/sec"
)

// revocationCheckTimeout bounds the Redis lookup on the hot request path.
const revocationCheckTimeout = 2 * time.Second

// ErrTokenRevoked is returned for tokens that were logged out.
var ErrTokenRevoked = errors.New("auth: token has been revoked")

// SessionVerifier verifies session JWTs and consults the revocation list.
//
// It implements the middleware's token verifier contract, so the blacklist
// check runs on every authenticated request without the middleware knowing
// about Redis.
type SessionVerifier struct {
	tokens  TokenProvider
	revoked RevokedTokenRepository
	logger  *slog.Logger
}

// NewSessionVerifier constructs a revocation-aware token verifier.
func NewSessionVerifier(tokens TokenProvider, revoked RevokedTokenRepository, logger *slog.Logger) *SessionVerifier {
	return &SessionVerifier{
		tokens:  tokens,
		revoked: revoked,
		logger:  logger,
	}
}

/*
VerifyToken checks the token signature and the revocation list.

Description: Fails closed. If the revocation store is unreachable the token
is rejected rather than letting logged-out sessions back in.

Parameters:
  - tokenStr: string

Returns:
  - *sec.SessionClaims: Verified claims
  - error: Signature, expiry, or revocation failures
*/
func (verifier *SessionVerifier) VerifyToken(tokenStr string) (*sec.SessionClaims, error) {
	claims, err := verifier.tokens.VerifyToken(tokenStr)
	if err != nil {
		return nil, err
	}

	context, cancel := stdctx.WithTimeout(stdctx.Background(), revocationCheckTimeout)
	defer cancel()

	isRevoked, err := verifier.revoked.IsRevoked(context, sec.HashToken(tokenStr))
	if err != nil {
		verifier.logger.Error("revocation_check_failed",
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if isRevoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}
