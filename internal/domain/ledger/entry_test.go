package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryType_Valid(t *testing.T) {
	for _, typ := range []EntryType{EntryTypeDeposit, EntryTypeWithdraw, EntryTypeTransferIn, EntryTypeTransferOut} {
		assert.True(t, typ.Valid(), "type %s", typ)
	}
	assert.False(t, EntryType("REFUND").Valid())
	assert.False(t, EntryType("").Valid())
}

func TestEntry_Signed(t *testing.T) {
	cases := []struct {
		typ  EntryType
		want int64
	}{
		{EntryTypeDeposit, 500},
		{EntryTypeTransferIn, 500},
		{EntryTypeWithdraw, -500},
		{EntryTypeTransferOut, -500},
	}
	for _, tc := range cases {
		e := &Entry{Type: tc.typ, AmountPaise: 500}
		assert.Equal(t, tc.want, e.Signed(), "type %s", tc.typ)
	}
}
