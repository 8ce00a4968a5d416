package client

import (
	"bytes"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HttpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

// RetrySetting retries requests which failed in transport or got a 5xx. A
// retried transition is safe: once committed, its hash is rejected.
type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

var DefaultRetrySetting = &RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

// HTTP2ClientConfig sets up the transport of `HTTP2Client`. With
// `KeepAlive` the idle connections are never closed by the client.
type HTTP2ClientConfig struct {
	Timeout     time.Duration
	IdleTimeout time.Duration
	KeepAlive   bool

	// InsecureSkipVerify accepts any certificate, eg. the self signed one of
	// a local node.
	InsecureSkipVerify bool

	Retry *RetrySetting
}

type HTTP2Client struct {
	doer      HttpDoer
	client    http.Client
	transport *http.Transport
}

func NewHTTP2Client(config HTTP2ClientConfig) (client *HTTP2Client, err error) {
	idleTimeout := config.IdleTimeout
	if config.KeepAlive {
		idleTimeout = 0
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
		IdleConnTimeout:   idleTimeout,
		DisableKeepAlives: !config.KeepAlive,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 1 * time.Second,
			DualStack: true,
		}).DialContext,
	}

	if err = http2.ConfigureTransport(transport); err != nil {
		return
	}

	client = &HTTP2Client{
		client: http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse // NOTE prevent redirect
			},
		},
		transport: transport,
	}
	client.doer = &client.client

	if retry := config.Retry; retry != nil {
		ec := pester.NewExtendedClient(&client.client)
		ec.MaxRetries = retry.MaxRetries
		ec.Concurrency = retry.Concurrency
		ec.Backoff = retry.Backoff

		client.doer = ec
	}

	return
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTP2Client) Get(url string, headers http.Header) (response *http.Response, err error) {
	var request *http.Request
	if request, err = http.NewRequest("GET", url, nil); err != nil {
		return
	}
	request.Header = headers

	return c.Do(request)
}

func (c *HTTP2Client) Post(url string, b []byte, headers http.Header) (response *http.Response, err error) {
	var request *http.Request
	if request, err = http.NewRequest("POST", url, bytes.NewBuffer(b)); err != nil {
		return
	}
	request.Header = headers

	return c.Do(request)
}

// It's same interface as https://golang.org/pkg/net/http/#Client.Do
func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}

// Stream sends the request without retries; a stream is not replayed.
func (c *HTTP2Client) Stream(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
