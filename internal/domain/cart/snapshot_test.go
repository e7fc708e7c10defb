package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_AddAndClamp(t *testing.T) {
	s := NewSnapshot()

	fired := s.Add("B1", DefaultMaxQuantity)
	assert.False(t, fired)
	assert.Equal(t, 1, s["B1"])

	fired = s.Add("B1", DefaultMaxQuantity)
	assert.False(t, fired)
	assert.Equal(t, 2, s["B1"])
}

func TestSnapshot_AddClampsAtCap(t *testing.T) {
	s := NewSnapshot()

	// 150 sequential adds end at exactly the cap, and the clamp fires at
	// the 100 -> 101 transition and on every attempt after it.
	firedCount := 0
	for i := 0; i < 150; i++ {
		if s.Add("B1", DefaultMaxQuantity) {
			firedCount++
		}
	}
	assert.Equal(t, DefaultMaxQuantity, s["B1"])
	assert.Equal(t, 50, firedCount)
}

func TestSnapshot_SetQtyRemovesOnZeroOrNegative(t *testing.T) {
	s := Snapshot{"B1": 3}

	s.SetQty("B1", 0, DefaultMaxQuantity)
	_, ok := s["B1"]
	assert.False(t, ok, "qty 0 must remove the line")

	s = Snapshot{"B1": 3}
	s.SetQty("B1", -5, DefaultMaxQuantity)
	_, ok = s["B1"]
	assert.False(t, ok, "negative qty behaves like removal")
}

func TestSnapshot_SetQtyClamps(t *testing.T) {
	s := NewSnapshot()

	fired := s.SetQty("B1", 250, DefaultMaxQuantity)
	assert.True(t, fired)
	assert.Equal(t, DefaultMaxQuantity, s["B1"])
}

func TestSnapshot_RemoveAbsentIsNoop(t *testing.T) {
	s := Snapshot{"B1": 1}
	s.Remove("B2")
	assert.Equal(t, Snapshot{"B1": 1}, s)
}

func TestSnapshot_Merge_SumsQuantities(t *testing.T) {
	dst := Snapshot{"A": 3}
	src := Snapshot{"A": 2, "B": 1}

	capped := dst.Merge(src, DefaultMaxQuantity)
	assert.Empty(t, capped)
	assert.Equal(t, Snapshot{"A": 5, "B": 1}, dst)
}

func TestSnapshot_Merge_EmptySourceIsNoop(t *testing.T) {
	dst := Snapshot{"A": 3, "B": 1}
	before := dst.Clone()

	capped := dst.Merge(Snapshot{}, DefaultMaxQuantity)
	assert.Empty(t, capped)
	assert.True(t, dst.Equal(before))
}

func TestSnapshot_Merge_ClampsSum(t *testing.T) {
	dst := Snapshot{"A": 80}
	src := Snapshot{"A": 60}

	capped := dst.Merge(src, DefaultMaxQuantity)
	require.Len(t, capped, 1)
	assert.Equal(t, "A", capped[0])
	assert.Equal(t, DefaultMaxQuantity, dst["A"])
}

func TestSnapshot_Merge_DropsNonPositiveResult(t *testing.T) {
	dst := Snapshot{"A": 2}
	src := Snapshot{"A": -2}

	dst.Merge(src, DefaultMaxQuantity)
	_, ok := dst["A"]
	assert.False(t, ok)
}

func TestSnapshot_CloneIsIndependent(t *testing.T) {
	s := Snapshot{"A": 1}
	c := s.Clone()
	c["A"] = 99
	assert.Equal(t, 1, s["A"])
}

func TestSnapshot_TotalItems(t *testing.T) {
	assert.Equal(t, 0, NewSnapshot().TotalItems())
	assert.Equal(t, 6, Snapshot{"A": 5, "B": 1}.TotalItems())
}
