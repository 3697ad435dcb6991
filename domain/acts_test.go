package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllDomains_EachHasActsAndARegulatoryBundle(t *testing.T) {
	for _, d := range AllDomains {
		acts, ok := ActsByDomain[d]
		assert.True(t, ok, "domain %s missing from ActsByDomain", d)
		assert.NotEmpty(t, acts, "domain %s has an empty act list", d)

		bundle, ok := RegulatoryBundles[d]
		assert.True(t, ok, "domain %s missing from RegulatoryBundles", d)
		assert.Equal(t, acts, bundle.ApplicableActs, "domain %s bundle acts must mirror ActsByDomain", d)
	}
}

func TestActAliases_ResolveToCanonicalActCodes(t *testing.T) {
	assert.Equal(t, "IPC", ActAliases["ipc"])
	assert.Equal(t, "BNS", ActAliases["bharatiya nyaya sanhita"])
	assert.Equal(t, "", ActAliases["section"], "bare keyword aliases resolve to empty, meaning strip rather than substitute")
}
