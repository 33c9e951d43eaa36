package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id                     uuid.UUID
	email                  Email
	role                   Role
	newsletterSubscribed   bool
	newsletterDiscountUsed bool
	isActive               bool
	createdAt              time.Time
	updatedAt              time.Time
}

func ReconstructUser(
	id uuid.UUID,
	email Email,
	role Role,
	newsletterSubscribed, newsletterDiscountUsed, isActive bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:                     id,
		email:                  email,
		role:                   role,
		newsletterSubscribed:   newsletterSubscribed,
		newsletterDiscountUsed: newsletterDiscountUsed,
		isActive:               isActive,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}
}

func (u *User) ID() uuid.UUID                { return u.id }
func (u *User) Email() Email                 { return u.email }
func (u *User) Role() Role                   { return u.role }
func (u *User) NewsletterSubscribed() bool   { return u.newsletterSubscribed }
func (u *User) NewsletterDiscountUsed() bool { return u.newsletterDiscountUsed }
func (u *User) IsActive() bool               { return u.isActive }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// NewsletterDiscountEligible reports whether the one-time subscriber discount
// is still available. The used flag flips inside the same transaction that
// persists the order consuming the discount.
func (u *User) NewsletterDiscountEligible() bool {
	return u.newsletterSubscribed && !u.newsletterDiscountUsed
}
