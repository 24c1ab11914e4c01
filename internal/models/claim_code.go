package models

import (
	"time"

	"gorm.io/gorm"
)

// ClaimCode is a redeemable token granting a fixed point reward. Codes are
// stored uppercase; lookups normalize before matching.
type ClaimCode struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Reward    int64          `gorm:"not null" json:"reward"`
	Status    string         `gorm:"size:10;not null;default:'active'" json:"status"` // active | inactive
	ExpiresAt *time.Time     `gorm:"column:expiry_date" json:"expires_at"`
	MaxClaims int            `gorm:"not null;default:0" json:"max_claims"` // 0 = unbounded
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ClaimCode) TableName() string {
	return "claim_codes"
}

// ClaimCodeRedemption marks one user's use of one code; the unique index is
// what makes double redemption impossible even under races.
type ClaimCodeRedemption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CodeID    uint      `gorm:"uniqueIndex:idx_code_user;not null" json:"code_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_code_user;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Code ClaimCode `gorm:"foreignKey:CodeID" json:"-"`
	User User      `gorm:"foreignKey:UserID" json:"-"`
}

func (ClaimCodeRedemption) TableName() string {
	return "claim_code_redemptions"
}
