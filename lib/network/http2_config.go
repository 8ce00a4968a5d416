package network

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"boscoin.io/votechain/lib/common"
)

type HTTP2NetworkConfig struct {
	NodeName string
	Endpoint *url.URL
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

// NewHTTP2NetworkConfigFromEndpoint reads the server options from the query
// of `endpoint`, eg. "https://0.0.0.0:12345?TLSCertFile=a.crt&TLSKeyFile=a.key&ReadTimeout=3s".
func NewHTTP2NetworkConfigFromEndpoint(nodeName string, endpoint *url.URL) (config *HTTP2NetworkConfig, err error) {
	query := endpoint.Query()

	durations := map[string]*time.Duration{}
	var ReadTimeout, ReadHeaderTimeout, WriteTimeout, IdleTimeout time.Duration
	durations["ReadTimeout"] = &ReadTimeout
	durations["ReadHeaderTimeout"] = &ReadHeaderTimeout
	durations["WriteTimeout"] = &WriteTimeout
	durations["IdleTimeout"] = &IdleTimeout

	for key, d := range durations {
		if *d, err = time.ParseDuration(getURLQuery(query, key, "0s")); err != nil {
			return
		}
		if *d < 0*time.Second {
			err = errors.New("invalid '" + key + "'")
			return
		}
	}

	scheme := strings.ToLower(endpoint.Scheme)
	if scheme != "http" && scheme != "https" {
		err = errors.New("endpoint scheme must be 'http' or 'https'")
		return
	}

	TLSCertFile := query.Get("TLSCertFile")
	TLSKeyFile := query.Get("TLSKeyFile")

	if scheme == "https" && (len(TLSCertFile) < 1 || len(TLSKeyFile) < 1) {
		err = errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
		return
	}

	config = &HTTP2NetworkConfig{
		NodeName:          nodeName,
		Endpoint:          endpoint,
		Addr:              endpoint.Host,
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		TLSCertFile:       TLSCertFile,
		TLSKeyFile:        TLSKeyFile,
	}

	return
}

func (config HTTP2NetworkConfig) IsHTTPS() bool {
	return strings.ToLower(config.Endpoint.Scheme) == "https"
}

func (config HTTP2NetworkConfig) String() string {
	return string(common.MustMarshalJSON(config))
}

func getURLQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}
