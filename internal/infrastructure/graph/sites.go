package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"salestrack/internal/core/apperror"
	"salestrack/pkg/logger"
)

// ResolveSite looks up a site by its absolute URL with a single Graph call.
func (c *Client) ResolveSite(ctx context.Context, siteURL string) (*Site, error) {
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return nil, apperror.NewSiteResolution(siteURL, fmt.Errorf("invalid site url"))
	}

	path := "/sites/" + u.Host
	if rel := strings.TrimRight(u.Path, "/"); rel != "" {
		path += ":" + rel
	}

	var site Site
	if err := c.do(ctx, http.MethodGet, path, nil, &site); err != nil {
		if apperror.IsCode(err, apperror.CodeAuth) {
			return nil, err
		}
		return nil, apperror.NewSiteResolution(siteURL, err)
	}
	if site.ID == "" {
		return nil, apperror.NewSiteResolution(siteURL, fmt.Errorf("empty site id"))
	}
	return &site, nil
}

// SiteResolver memoizes the id of the configured site for the life of the process.
// The mapping cannot change during a run, so it is never refetched.
type SiteResolver struct {
	client  *Client
	siteURL string

	mu     sync.Mutex
	siteID string
}

func NewSiteResolver(client *Client, siteURL string) *SiteResolver {
	return &SiteResolver{client: client, siteURL: siteURL}
}

// SiteID returns the site id, resolving it on first use.
// Failed lookups are not memoized.
func (r *SiteResolver) SiteID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.siteID != "" {
		return r.siteID, nil
	}

	site, err := r.client.ResolveSite(ctx, r.siteURL)
	if err != nil {
		return "", err
	}
	r.siteID = site.ID
	logger.Info(ctx, "site resolved", "site_url", r.siteURL, "site_id", site.ID)
	return r.siteID, nil
}

// SiteURL returns the configured site URL.
func (r *SiteResolver) SiteURL() string {
	return r.siteURL
}
