// Package policy decides whether an actor may act on an owned resource.
//
// Two independent gates are applied to every mutation: a role gate (is the
// actor's role in the set the operation allows?) and an ownership gate (is the
// actor the owner, or an admin?). Neither gate substitutes for the other.
package policy

import (
	"github.com/devcamper/bootcamp-api/internal/core/domain"
	"github.com/devcamper/bootcamp-api/internal/pkg/metrics"
)

// Role sets used by the routes and re-checked by the services.
var (
	ManageListings = []domain.Role{domain.RolePublisher, domain.RoleAdmin}
	ManageReviews  = []domain.Role{domain.RoleUser, domain.RoleAdmin}
	ManageUsers    = []domain.Role{domain.RoleAdmin}
)

// CanModify reports whether actor is an admin or owns r.
func CanModify(actor domain.Actor, r domain.Owned) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.ID != "" && actor.ID == r.OwnerID()
}

// HasRole reports whether the actor's role is one of allowed.
func HasRole(actor domain.Actor, allowed ...domain.Role) bool {
	for _, r := range allowed {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// AuthorizeMutation applies both gates for an update or delete on r.
func AuthorizeMutation(resource, action string, actor domain.Actor, r domain.Owned, allowed ...domain.Role) error {
	if !HasRole(actor, allowed...) || !CanModify(actor, r) {
		record(resource, action, false)
		return domain.E(domain.KindForbidden, "user "+actor.ID+" is not authorized to "+action+" this "+resource)
	}
	record(resource, action, true)
	return nil
}

// AuthorizeRole applies only the role gate, for operations with no owned
// target (create, admin listings).
func AuthorizeRole(resource, action string, actor domain.Actor, allowed ...domain.Role) error {
	if !HasRole(actor, allowed...) {
		record(resource, action, false)
		return domain.E(domain.KindForbidden, "role "+string(actor.Role)+" is not authorized to "+action+" "+resource)
	}
	record(resource, action, true)
	return nil
}

// AuthorizeCreate enforces one owned bootcamp per non-admin actor. The caller
// performs the existence lookup before any insert.
func AuthorizeCreate(actor domain.Actor, alreadyOwns bool) error {
	if alreadyOwns && actor.Role != domain.RoleAdmin {
		record("bootcamp", "create", false)
		return domain.ErrBootcampPublished
	}
	return nil
}

func record(resource, action string, allowed bool) {
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	metrics.PolicyDecisionsTotal.WithLabelValues(resource, action, outcome).Inc()
}
