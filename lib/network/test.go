package network

import (
	"net/url"
)

func NewTestHTTP2Network() *HTTP2Network {
	endpoint, _ := url.Parse("http://127.0.0.1:0")
	config, err := NewHTTP2NetworkConfigFromEndpoint("test-node", endpoint)
	if err != nil {
		panic(err)
	}

	return NewHTTP2Network(config)
}
