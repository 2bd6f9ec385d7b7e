package ws

import (
	"testing"

	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClientWants_NoFilterAdmitsEverything(t *testing.T) {
	c := &client{}

	assert.True(t, c.wants(domain.SeverityInfo))
	assert.True(t, c.wants(domain.SeverityDanger))
}

func TestClientWants_MinSeverityFilters(t *testing.T) {
	c := &client{}
	c.setMinSeverity(domain.SeverityWarning)

	assert.False(t, c.wants(domain.SeverityInfo))
	assert.True(t, c.wants(domain.SeverityWarning))
	assert.True(t, c.wants(domain.SeverityDanger))
}

func TestClientWants_FilterCanBeCleared(t *testing.T) {
	c := &client{}
	c.setMinSeverity(domain.SeverityDanger)
	c.setMinSeverity(0)

	assert.True(t, c.wants(domain.SeverityInfo))
}
