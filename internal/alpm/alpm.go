// Package alpm provides a version source backed by Arch Linux's official
// repositories web interface.
package alpm

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/repin-dev/repin/internal/core"
)

const (
	DefaultURL = "https://archlinux.org"
	ecosystem  = "alpm"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

type Source struct {
	baseURL string
	client  *core.Client
	urls    *URLs
}

func New(baseURL string, client *core.Client) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	s := &Source{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
	s.urls = &URLs{baseURL: s.baseURL}
	return s
}

func (s *Source) Ecosystem() string {
	return ecosystem
}

func (s *Source) URLs() core.URLBuilder {
	return s.urls
}

type searchResponse struct {
	Version int             `json:"version"`
	Limit   int             `json:"limit"`
	Valid   bool            `json:"valid"`
	Results []packageResult `json:"results"`
}

type packageResult struct {
	PkgName    string   `json:"pkgname"`
	PkgBase    string   `json:"pkgbase"`
	PkgVer     string   `json:"pkgver"`
	PkgRel     string   `json:"pkgrel"`
	Epoch      int      `json:"epoch"`
	PkgDesc    string   `json:"pkgdesc"`
	Repo       string   `json:"repo"`
	Arch       string   `json:"arch"`
	URL        string   `json:"url"`
	Licenses   []string `json:"licenses"`
	LastUpdate string   `json:"last_update"`
	FlagDate   string   `json:"flag_date"`
}

// FetchVersion retrieves the current pkgver of a package. Though the API
// path contains "search", the name parameter only returns exact matches.
func (s *Source) FetchVersion(ctx context.Context, name string) (*core.Version, error) {
	searchURL := fmt.Sprintf("%s/packages/search/json/?name=%s", s.baseURL, url.QueryEscape(name))

	var resp searchResponse
	if err := s.client.GetJSON(ctx, searchURL, &resp); err != nil {
		if httpErr, ok := err.(*core.HTTPError); ok && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Ecosystem: ecosystem, Name: name}
		}
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, &core.NotFoundError{Ecosystem: ecosystem, Name: name}
	}

	r := resp.Results[0]

	var published time.Time
	if t, err := time.Parse(time.RFC3339, r.LastUpdate); err == nil {
		published = t
	}

	return &core.Version{
		Number:      r.PkgVer,
		Release:     r.PkgRel,
		Licenses:    r.Licenses,
		PublishedAt: published,
	}, nil
}

type URLs struct {
	baseURL string
}

func (u *URLs) Registry(name, version string) string {
	return fmt.Sprintf("%s/packages/?name=%s", u.baseURL, url.QueryEscape(name))
}

func (u *URLs) Release(name, version string) string {
	return ""
}

func (u *URLs) PURL(name, version string) string {
	purl := fmt.Sprintf("pkg:alpm/arch/%s", name)
	if version != "" {
		purl += "@" + version
	}
	return purl
}
