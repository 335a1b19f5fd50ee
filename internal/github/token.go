// Package github implements the gate's platform capabilities against the
// GitHub REST API, authenticating as a GitHub App installation.
package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gh "github.com/google/go-github/v71/github"
	"go.uber.org/zap"

	"github.com/wahlandcase/mergegate/internal/gate"
)

// appJWTTTL is the lifetime of the signed App JWT. GitHub caps it at ten
// minutes; staying below leaves room for clock skew.
const appJWTTTL = 9 * time.Minute

// clockSkew backdates the JWT's issued-at so a fast local clock does not
// produce a token from the future.
const clockSkew = 30 * time.Second

// TokenBroker exchanges GitHub App credentials for a short-lived
// installation token scoped to one repository. The token is opaque to
// callers and is never logged.
type TokenBroker struct {
	appID string
	key   *rsa.PrivateKey
	log   *zap.SugaredLogger

	// newAppsClient is swapped by tests to avoid the network
	newAppsClient func(jwt string) appsAPI
}

// appsAPI is the slice of go-github's Apps service the broker uses
type appsAPI interface {
	FindRepositoryInstallation(ctx context.Context, owner, repo string) (*gh.Installation, *gh.Response, error)
	CreateInstallationToken(ctx context.Context, id int64, opts *gh.InstallationTokenOptions) (*gh.InstallationToken, *gh.Response, error)
}

// NewTokenBroker parses the PEM-encoded App private key and returns a
// broker for the given App id.
func NewTokenBroker(appID string, privateKeyPEM []byte, log *zap.SugaredLogger) (*TokenBroker, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, &gate.AuthError{Reason: "invalid app private key", Err: err}
	}
	return &TokenBroker{
		appID: appID,
		key:   key,
		log:   log,
		newAppsClient: func(token string) appsAPI {
			return gh.NewClient(nil).WithAuthToken(token).Apps
		},
	}, nil
}

// InstallationToken resolves the App's installation on owner/name and
// mints a bearer token for it.
func (b *TokenBroker) InstallationToken(ctx context.Context, owner, name string) (string, error) {
	signed, err := b.appJWT(time.Now())
	if err != nil {
		return "", &gate.AuthError{Reason: "signing app jwt", Err: err}
	}
	apps := b.newAppsClient(signed)

	inst, _, err := apps.FindRepositoryInstallation(ctx, owner, name)
	if err != nil {
		return "", &gate.AuthError{Reason: fmt.Sprintf("no installation for %s/%s", owner, name), Err: err}
	}

	tok, _, err := apps.CreateInstallationToken(ctx, inst.GetID(), &gh.InstallationTokenOptions{})
	if err != nil {
		return "", &gate.AuthError{Reason: "creating installation token", Err: err}
	}

	b.log.Debugw("installation token issued",
		"installation", inst.GetID(),
		"expires", tok.GetExpiresAt().Format(time.RFC3339))
	return tok.GetToken(), nil
}

// appJWT signs the App authentication JWT (RS256, issuer = App id)
func (b *TokenBroker) appJWT(now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    b.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-clockSkew)),
		ExpiresAt: jwt.NewNumericDate(now.Add(appJWTTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(b.key)
}
