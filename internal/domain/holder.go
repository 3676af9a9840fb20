package domain

import "time"

// AccountHolder is the KYC profile behind a user. Exactly one profile per
// user; accounts reference the holder, not the user.
type AccountHolder struct {
	ID          string
	UserID      string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Phone       string
	Address     string
	SSNLastFour string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HolderPatch carries a partial profile update. Nil fields are left
// untouched; only the listed fields are recognized.
type HolderPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
}

// Apply copies the set fields onto the holder.
func (p HolderPatch) Apply(holder *AccountHolder) {
	if p.FirstName != nil {
		holder.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		holder.LastName = *p.LastName
	}
	if p.Phone != nil {
		holder.Phone = *p.Phone
	}
	if p.Address != nil {
		holder.Address = *p.Address
	}
}
