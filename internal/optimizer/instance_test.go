package optimizer

import (
	"testing"

	"outreach-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInstanceIndexesDepotFirst(t *testing.T) {
	inst, err := NewInstance(input(diamond(10), 2, 15))
	require.NoError(t, err)

	require.Equal(t, 5, inst.Len())
	assert.Equal(t, "depot", inst.Points[0].ID)
	assert.Zero(t, inst.Demand(0))
	assert.Equal(t, "p1", inst.Points[1].ID)
	assert.Equal(t, "p4", inst.Points[4].ID)
	assert.Len(t, inst.Vehicles, 2)
	assert.Equal(t, 15, inst.MaxCapacity())
	assert.False(t, inst.Empty())
}

func TestNewInstanceDefaultsDepotID(t *testing.T) {
	in := input(diamond(1), 1, 10)
	in.Depot = domain.Point{Location: origin}

	inst, err := NewInstance(in)
	require.NoError(t, err)
	assert.Equal(t, DefaultDepotID, inst.Points[0].ID)
	assert.Equal(t, "DEPOT", inst.Points[0].Name)
}

func TestNewInstanceRejectsFleetConfig(t *testing.T) {
	_, err := NewInstance(input(diamond(1), 0, 10))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewInstance(input(diamond(1), 2, 0))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewInstance(input(diamond(1), -1, -1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewInstanceRejectsPoints(t *testing.T) {
	dup := diamond(1)
	dup[2].ID = "p1"
	_, err := NewInstance(input(dup, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `"p1"`)

	depotClash := diamond(1)
	depotClash[0].ID = "depot"
	_, err = NewInstance(input(depotClash, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidInput)

	negative := diamond(1)
	negative[1].Demand = -3
	_, err = NewInstance(input(negative, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidInput)

	blank := diamond(1)
	blank[3].ID = "  "
	_, err = NewInstance(input(blank, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewInstanceConfigCheckedBeforePoints(t *testing.T) {
	dup := diamond(1)
	dup[1].ID = "p1"

	_, err := NewInstance(input(dup, 0, 10))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewInstanceEmpty(t *testing.T) {
	inst, err := NewInstance(input(nil, 1, 10))
	require.NoError(t, err)
	assert.True(t, inst.Empty())
}

func TestNewInstanceRejectsCoordinates(t *testing.T) {
	in := input(nil, 1, 10)
	in.Depot.Location.Lat = 95
	_, err := NewInstance(in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := diamond(1)
	bad[0].Location.Lon = 181
	_, err = NewInstance(input(bad, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
