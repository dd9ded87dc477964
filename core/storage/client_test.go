package storage_test

import (
	"testing"

	"twii-miner/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"Plain", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "addon", Prefix: "travel"}},
		{"HTTPScheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"HTTPSScheme", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true, Region: "eu-west-1"}},
		{"NegativeTimeout", storage.Config{Endpoint: "localhost:9000", TimeoutSeconds: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClient_InvalidEndpoint(t *testing.T) {
	_, err := storage.NewClient(storage.Config{Endpoint: "bad endpoint:9000"})
	assert.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		cfg    storage.Config
		host   string
		secure bool
	}{
		{storage.Config{Endpoint: "localhost:9000"}, "localhost:9000", false},
		{storage.Config{Endpoint: "localhost:9000", UseSSL: true}, "localhost:9000", true},
		{storage.Config{Endpoint: "http://minio:9000"}, "minio:9000", false},
		{storage.Config{Endpoint: "https://s3.amazonaws.com"}, "s3.amazonaws.com", true},
	}
	for _, tt := range tests {
		host, secure := storage.Endpoint(tt.cfg)
		assert.Equal(t, tt.host, host, tt.cfg.Endpoint)
		assert.Equal(t, tt.secure, secure, tt.cfg.Endpoint)
	}
}
