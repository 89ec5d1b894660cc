package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testAdminLevel = 2

type pair struct{ contentID, userID uint }

func lookupOf(pairs ...pair) Lookup {
	set := make(map[pair]bool, len(pairs))
	for _, p := range pairs {
		set[p] = true
	}
	return func(contentID, userID uint) bool {
		return set[pair{contentID, userID}]
	}
}

func none() Lookup {
	return func(uint, uint) bool { return false }
}

func TestCanView(t *testing.T) {
	student := Viewer{ID: 7}
	admin := Viewer{ID: 1, PrivilegeLevel: testAdminLevel}

	free := Item{ID: 1, IsPublic: false, Price: 0}
	paid := Item{ID: 2, IsPublic: false, Price: 100}
	public := Item{ID: 3, IsPublic: true}

	tests := []struct {
		name     string
		item     Item
		viewer   Viewer
		grants   Lookup
		payments Lookup
		want     Decision
	}{
		{
			name: "public content is viewable by anyone",
			item: public, viewer: student, grants: none(), payments: none(),
			want: Decision{Allowed: true, Reason: ReasonPublic},
		},
		{
			name: "public wins even over admin privilege",
			item: public, viewer: admin, grants: none(), payments: none(),
			want: Decision{Allowed: true, Reason: ReasonPublic},
		},
		{
			name: "admin sees private content",
			item: free, viewer: admin, grants: none(), payments: none(),
			want: Decision{Allowed: true, Reason: ReasonOwnerPrivilege},
		},
		{
			name: "admin sees paid content without purchase",
			item: paid, viewer: admin, grants: none(), payments: none(),
			want: Decision{Allowed: true, Reason: ReasonOwnerPrivilege},
		},
		{
			name: "privilege exactly at threshold counts as admin",
			item: free, viewer: Viewer{ID: 9, PrivilegeLevel: testAdminLevel}, grants: none(), payments: none(),
			want: Decision{Allowed: true, Reason: ReasonOwnerPrivilege},
		},
		{
			name: "privilege just below threshold does not",
			item: free, viewer: Viewer{ID: 9, PrivilegeLevel: testAdminLevel - 1}, grants: none(), payments: none(),
			want: Decision{Allowed: false, Reason: ReasonRequiresGrant},
		},
		{
			name: "private without grant is denied with grant affordance",
			item: free, viewer: student, grants: none(), payments: none(),
			want: Decision{Allowed: false, Reason: ReasonRequiresGrant},
		},
		{
			name: "private with grant is allowed",
			item: free, viewer: student, grants: lookupOf(pair{1, 7}), payments: none(),
			want: Decision{Allowed: true, Reason: ReasonGranted},
		},
		{
			name: "paid without approved payment is denied with purchase affordance",
			item: paid, viewer: student, grants: none(), payments: none(),
			want: Decision{Allowed: false, Reason: ReasonRequiresPayment},
		},
		{
			name: "paid with approved payment is allowed",
			item: paid, viewer: student, grants: none(), payments: lookupOf(pair{2, 7}),
			want: Decision{Allowed: true, Reason: ReasonPurchased},
		},
		{
			name: "approved payment for another content does not leak",
			item: paid, viewer: student, grants: none(), payments: lookupOf(pair{99, 7}),
			want: Decision{Allowed: false, Reason: ReasonRequiresPayment},
		},
		{
			name: "approved payment for another user does not leak",
			item: paid, viewer: student, grants: none(), payments: lookupOf(pair{2, 8}),
			want: Decision{Allowed: false, Reason: ReasonRequiresPayment},
		},
		{
			name: "grant does not unlock paid content",
			item: paid, viewer: student, grants: lookupOf(pair{2, 7}), payments: none(),
			want: Decision{Allowed: false, Reason: ReasonRequiresPayment},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanView(tt.item, tt.viewer, testAdminLevel, tt.grants, tt.payments)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Approving a payment flips the decision from requires_payment to purchased
// without touching the grant set.
func TestPurchaseRoundTrip(t *testing.T) {
	item := Item{ID: 2, Price: 100}
	viewer := Viewer{ID: 7}

	approved := map[pair]bool{}
	payments := func(contentID, userID uint) bool { return approved[pair{contentID, userID}] }

	before := CanView(item, viewer, testAdminLevel, none(), payments)
	assert.Equal(t, Decision{Allowed: false, Reason: ReasonRequiresPayment}, before)

	approved[pair{2, 7}] = true

	after := CanView(item, viewer, testAdminLevel, none(), payments)
	assert.Equal(t, Decision{Allowed: true, Reason: ReasonPurchased}, after)
}
