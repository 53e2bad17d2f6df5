package iterfn_test

import (
	"encoding/json"
	"testing"

	"github.com/samuelfneumann/smallmdp/iterfn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues(t *testing.T) {
	c, err := iterfn.NewConstant(0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.1, c.At(0))
	assert.Equal(t, 0.1, c.At(1000))

	inv, err := iterfn.NewInverseLinear(1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, inv.At(0))
	assert.InDelta(t, 0.5, inv.At(100), 1e-12)

	exp, err := iterfn.NewExponential(1, 0.5, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, exp.At(2), 1e-12)
	assert.Equal(t, 0.1, exp.At(100))

	_, err = iterfn.NewInverseLinear(1, 0)
	assert.Error(t, err)
	_, err = iterfn.NewExponential(1, 2, 0)
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	inv, err := iterfn.NewInverseLinear(0.5, 10)
	require.NoError(t, err)

	data, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"Type":"InverseLinear","Config":{"Initial":0.5,"HalfLife":10}}`,
		string(data))

	var out iterfn.IterFn
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, inv, out)
	assert.NoError(t, out.Valid())

	err = json.Unmarshal([]byte(`{"Type":"Cosine","Config":{}}`), &out)
	assert.Error(t, err)

	var zero iterfn.IterFn
	assert.Error(t, zero.Valid())
}

func TestRange(t *testing.T) {
	c, err := iterfn.NewConstant(0.3)
	require.NoError(t, err)
	min, max := c.Range()
	assert.Equal(t, 0.3, min)
	assert.Equal(t, 0.3, max)

	inv, err := iterfn.NewInverseLinear(2, 10)
	require.NoError(t, err)
	min, max = inv.Range()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 2.0, max)

	exp, err := iterfn.NewExponential(0.5, 0.9, 0.1)
	require.NoError(t, err)
	min, max = exp.Range()
	assert.Equal(t, 0.1, min)
	assert.Equal(t, 0.5, max)
	for _, i := range []int{0, 1, 10, 1000} {
		assert.GreaterOrEqual(t, exp.At(i), min)
		assert.LessOrEqual(t, exp.At(i), max)
	}
}
