package models

import (
	"context"
	"encoding/base32"
	"slices"
	"strings"
	"time"

	"github.com/go-authgate/passwordgrant/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// GrantTypePassword is the grant an application needs to use the password strategy.
const GrantTypePassword = "password"

// Base32 characters, but lowercased.
const lowerBase32Chars = "abcdefghijklmnopqrstuvwxyz234567"

// base32 encoder that uses lowered characters without padding.
var base32Lower = base32.NewEncoding(lowerBase32Chars).WithPadding(base32.NoPadding)

type OAuthApplication struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	ClientID     string `gorm:"uniqueIndex;not null"`
	ClientSecret string `gorm:"not null"` // bcrypt hashed secret
	ClientName   string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	UserID       string `gorm:"not null"`
	Scopes       string `gorm:"not null"`
	GrantTypes   string `gorm:"not null;default:'password'"` // space separated
	ClientType   string `gorm:"not null;default:'public'"`   // "confidential" or "public"
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AllowsGrant reports whether grant is listed in GrantTypes.
func (app *OAuthApplication) AllowsGrant(grant string) bool {
	return slices.Contains(strings.Fields(app.GrantTypes), grant)
}

// GenerateClientSecret will generate the client secret and returns the plaintext and saves the hash at the database
func (app *OAuthApplication) GenerateClientSecret(ctx context.Context) (string, error) {
	rBytes, err := util.CryptoRandomBytes(32)
	if err != nil {
		return "", err
	}
	// Prefix makes leaked secrets easy for scanners to find.
	clientSecret := "apg_" + base32Lower.EncodeToString(rBytes)

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	app.ClientSecret = string(hashedSecret)
	return clientSecret, nil
}

// ValidateClientSecret validates the given secret by the hash saved in database
func (app *OAuthApplication) ValidateClientSecret(secret []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(app.ClientSecret), secret) == nil
}

// TableName overrides the table name used by OAuthApplication to `oauth_applications`
func (OAuthApplication) TableName() string {
	return "oauth_applications"
}
