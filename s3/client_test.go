package s3_test

import (
	"context"
	"testing"

	"github.com/sagarc03/schedsync/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_CustomEndpoint(t *testing.T) {
	client, err := s3.NewClient(context.Background(), s3.Config{
		Bucket:          "scheduler",
		Endpoint:        "https://account.r2.cloudflarestorage.com",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "auto", opts.Region)
	assert.Equal(t, "https://account.r2.cloudflarestorage.com", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestOpen_RequiresBucket(t *testing.T) {
	_, err := s3.Open(context.Background(), s3.Config{Region: "us-east-1"})
	assert.Error(t, err)
}
