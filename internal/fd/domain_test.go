package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainCountAndHas(t *testing.T) {
	assert.Equal(t, 0, Empty.Count())
	assert.Equal(t, 1, Zero.Count())
	assert.Equal(t, 1, One.Count())
	assert.Equal(t, 2, Both.Count())

	assert.True(t, Both.Has(0))
	assert.True(t, Both.Has(1))
	assert.True(t, Zero.Has(0))
	assert.False(t, Zero.Has(1))
	assert.False(t, Both.Has(2))
}

func TestDomainRemove(t *testing.T) {
	assert.Equal(t, One, Both.Remove(0))
	assert.Equal(t, Zero, Both.Remove(1))
	assert.Equal(t, Empty, Zero.Remove(0))
}

func TestDomainSingleton(t *testing.T) {
	assert.True(t, Zero.IsSingleton())
	assert.True(t, One.IsSingleton())
	assert.False(t, Both.IsSingleton())
	assert.False(t, Empty.IsSingleton())

	assert.Equal(t, 0, Zero.SingletonValue())
	assert.Equal(t, 1, One.SingletonValue())
}

func TestFix(t *testing.T) {
	assert.Equal(t, One, Fix(1))
	assert.Equal(t, Zero, Fix(0))
}

func TestDomainString(t *testing.T) {
	assert.Equal(t, "{}", Empty.String())
	assert.Equal(t, "{0}", Zero.String())
	assert.Equal(t, "{1}", One.String())
	assert.Equal(t, "{0,1}", Both.String())
}
