package oauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const tokenPath = "/v1/security/oauth2/token"

// AmadeusOAuth exchanges client credentials for a short-lived bearer token
type AmadeusOAuth struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	logger     logger.Logger
}

// NewAmadeusOAuth creates a credential client against baseURL.
// A nil httpClient uses http.DefaultClient.
func NewAmadeusOAuth(baseURL, clientID, clientSecret string, httpClient *http.Client, logger logger.Logger) *AmadeusOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     strings.TrimRight(baseURL, "/") + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &AmadeusOAuth{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Token performs one client-credentials exchange. Tokens are never cached:
// every call hits the token endpoint.
func (o *AmadeusOAuth) Token(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)

	token, err := o.config.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return "", &entity.UpstreamError{Op: "amadeus token", StatusCode: re.Response.StatusCode}
		}
		return "", fmt.Errorf("amadeus token: %w", err)
	}

	o.logger.Debug("Amadeus token acquired", "expiry", token.Expiry)
	return token.AccessToken, nil
}
