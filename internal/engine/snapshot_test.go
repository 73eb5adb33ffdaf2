package engine

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_CanonicalGolden(t *testing.T) {
	e := New(quietConfig())

	err := apply(t, e, Command{
		Type:     CommandPurchase,
		Purchase: &PurchaseCommand{RetailerID: "starbucks", Denomination: 10, Quantity: 2},
	})
	require.NoError(t, err)

	data, err := e.Snapshot().CanonicalJSON()
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "purchase_snapshot", data)
}
