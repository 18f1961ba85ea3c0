package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	httpScheme  = "http"
	httpsScheme = "https"
)

func init() {
	register(httpScheme, func(uri string) (Source, error) {
		return &httpSource{base: uri, client: http.DefaultClient, scheme: httpScheme}, nil
	})
	register(httpsScheme, func(uri string) (Source, error) {
		return &httpSource{base: uri, client: http.DefaultClient, scheme: httpsScheme}, nil
	})
}

type httpSource struct {
	base   string
	scheme string
	client *http.Client
}

func (s *httpSource) url(remotePath string) string {
	if strings.HasPrefix(remotePath, "/") {
		return strings.TrimSuffix(s.base, "/") + remotePath
	}
	return strings.TrimSuffix(s.base, "/") + "/" + remotePath
}

func (s *httpSource) Fetch(remotePath string, _ int64) ([]byte, error) {
	resp, err := s.client.Get(s.url(remotePath))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: GET %s: status %d", s.url(remotePath), resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *httpSource) HasFile(remotePath string) bool {
	resp, err := s.client.Head(s.url(remotePath))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *httpSource) Scheme() string { return s.scheme }
func (s *httpSource) Close() error   { return nil }
