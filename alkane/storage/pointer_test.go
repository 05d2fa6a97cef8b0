package storage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sprimage/SatCity/alkane"
)

func TestPointerTypedRoundTrip(t *testing.T) {
	db := NewMemDB()
	p := FromKeyword(db, "/paused")

	v, err := p.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0), v)

	require.NoError(t, p.SetUint8(1))
	v, err = p.GetUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)
}

func TestPointerSelectNamespaces(t *testing.T) {
	db := NewMemDB()
	base := FromKeyword(db, "/ft")
	alice := alkane.NewId(2, 11)
	token := alkane.NewId(2, 100)

	balPtr := base.SelectId(alice).SelectId(token)
	require.NoError(t, balPtr.SetU128(big.NewInt(50)))

	other := base.SelectId(alkane.NewId(2, 12)).SelectId(token)
	v, err := other.GetU128()
	require.NoError(t, err)
	require.Equal(t, int64(0), v.Int64())

	got, err := balPtr.GetU128()
	require.NoError(t, err)
	require.Equal(t, int64(50), got.Int64())
}

func TestPointerSortedPairCanonicalFromEitherOrder(t *testing.T) {
	db := NewMemDB()
	a := alkane.NewId(2, 7)
	b := alkane.NewId(5, 1)

	p1 := FromKeyword(db, "/pool").SelectSortedIdPair(a, b)
	p2 := FromKeyword(db, "/pool").SelectSortedIdPair(b, a)
	require.Equal(t, p1.Key(), p2.Key())
}

func TestPointerClearRemovesValue(t *testing.T) {
	db := NewMemDB()
	p := FromKeyword(db, "/nft").Select([]byte("token"))
	require.NoError(t, p.SetId(alkane.NewId(3, 9)))

	exists, err := p.Exists()
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, p.Clear())
	exists, err = p.Exists()
	require.NoError(t, err)
	require.False(t, exists)
}
