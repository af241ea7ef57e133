package assets

import (
	"errors"
	"fmt"
	"imgstore/internal/structures"
	"net/url"
	"strings"
)

const (
	schemeTLS   = "s3"
	schemePlain = "s3+http"

	imageStoreSetting = "storage.imageStoreConnection"
)

// RemoteConnection is the parsed form of
// s3://ACCESS_KEY:SECRET_KEY@host[:port][?region=...&publicURL=...].
// The s3+http scheme disables TLS.
type RemoteConnection struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Region    string
	PublicURL string
}

func configError(err error) error {
	return &structures.ConfigurationError{Setting: imageStoreSetting, Err: err}
}

func ParseRemoteConnection(raw string) (*RemoteConnection, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, configError(err)
	}

	conn := &RemoteConnection{}
	switch u.Scheme {
	case schemeTLS:
		conn.Secure = true
	case schemePlain:
		conn.Secure = false
	default:
		return nil, configError(fmt.Errorf("unsupported scheme %q", u.Scheme))
	}

	if u.Host == "" {
		return nil, configError(errors.New("missing endpoint host"))
	}
	conn.Endpoint = u.Host

	if u.User == nil || u.User.Username() == "" {
		return nil, configError(errors.New("missing access key"))
	}
	secret, ok := u.User.Password()
	if !ok || secret == "" {
		return nil, configError(errors.New("missing secret key"))
	}
	conn.AccessKey = u.User.Username()
	conn.SecretKey = secret

	q := u.Query()
	conn.Region = q.Get("region")
	conn.PublicURL = strings.TrimSuffix(q.Get("publicURL"), "/")
	if conn.PublicURL == "" {
		scheme := "http"
		if conn.Secure {
			scheme = "https"
		}
		conn.PublicURL = scheme + "://" + conn.Endpoint
	} else if pu, err := url.Parse(conn.PublicURL); err != nil || pu.Scheme == "" || pu.Host == "" {
		return nil, configError(fmt.Errorf("invalid publicURL %q", conn.PublicURL))
	}

	return conn, nil
}
