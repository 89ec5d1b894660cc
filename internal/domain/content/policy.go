package content

// Viewer is the identity the external auth collaborator supplies.
type Viewer struct {
	ID             uint
	PrivilegeLevel int
}

type Reason string

const (
	ReasonPublic          Reason = "public"
	ReasonOwnerPrivilege  Reason = "owner_privilege"
	ReasonGranted         Reason = "granted"
	ReasonPurchased       Reason = "purchased"
	ReasonRequiresPayment Reason = "requires_payment"
	ReasonRequiresGrant   Reason = "requires_grant"
)

type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

// Lookup answers a set-membership question for a (content, user) pair.
type Lookup func(contentID, userID uint) bool

// CanView decides whether viewer may see item. Pure over its inputs: the
// item's visibility fields and the two injected membership lookups. Denials
// carry the affordance the caller should surface, purchase for paid content
// and an access request otherwise.
func CanView(item Item, viewer Viewer, adminLevel int, hasGrant, hasApprovedPayment Lookup) Decision {
	if item.IsPublic {
		return Decision{Allowed: true, Reason: ReasonPublic}
	}
	if viewer.PrivilegeLevel >= adminLevel {
		return Decision{Allowed: true, Reason: ReasonOwnerPrivilege}
	}
	if item.IsPaid() {
		if hasApprovedPayment(item.ID, viewer.ID) {
			return Decision{Allowed: true, Reason: ReasonPurchased}
		}
		return Decision{Allowed: false, Reason: ReasonRequiresPayment}
	}
	if hasGrant(item.ID, viewer.ID) {
		return Decision{Allowed: true, Reason: ReasonGranted}
	}
	return Decision{Allowed: false, Reason: ReasonRequiresGrant}
}
