package main

import (
	"fmt"
	"time"

	"github.com/hearthapp/hearth/internal/client"
	"github.com/hearthapp/hearth/internal/config"
	"github.com/hearthapp/hearth/internal/domain"
	"github.com/hearthapp/hearth/internal/identity"
)

// clientFactory builds the API client for a command. Tests replace it.
var clientFactory = getClient

// getClient resolves configuration and identity and returns a client.
func getClient() (*client.Client, error) {
	cfg, err := config.ResolveClientConfig()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotConfigured, err)
	}

	scope, err := identity.Resolve(cfg.Identity)
	if err != nil {
		return nil, err
	}

	return client.NewClient(cfg.BaseURL(), scope), nil
}

// optionalString returns nil for an unset flag.
func optionalString(changed bool, v string) *string {
	if !changed {
		return nil
	}
	return &v
}

func optionalFloat(changed bool, v float64) *float64 {
	if !changed {
		return nil
	}
	return &v
}

// dateLayout is the short form accepted by date flags besides RFC 3339.
const dateLayout = "2006-01-02"

// optionalDate parses a date flag given as YYYY-MM-DD or RFC 3339.
func optionalDate(changed bool, flag, v string) (*time.Time, error) {
	if !changed {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, domain.NewInvalidArgumentError(fmt.Sprintf("--%s must be YYYY-MM-DD or RFC 3339, got %q", flag, v))
	}
	return &t, nil
}
