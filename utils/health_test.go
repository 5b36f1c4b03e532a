package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHealth(t *testing.T) {
	checks := []HealthCheck{
		{Name: "redis", Ping: func(context.Context) error { return nil }},
		{Name: "mongo", Ping: func(context.Context) error { return errors.New("connection refused") }},
	}

	status := CheckHealth(context.Background(), checks)
	assert.Equal(t, "degraded", status.Status)
	assert.False(t, status.Healthy())
	assert.Equal(t, map[string]bool{"redis": true, "mongo": false}, status.Services)
	assert.Equal(t, status, GetHealthStatus())

	status = CheckHealth(context.Background(), checks[:1])
	assert.True(t, status.Healthy())
}
