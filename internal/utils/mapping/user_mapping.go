package mapping

import (
	"database/sql"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/SscSPs/gallery_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:          d.UserID,
		Username:        d.Username,
		Email:           nullString(d.Email),
		GivenName:       nullString(d.GivenName),
		FamilyName:      nullString(d.FamilyName),
		GoogleID:        nullStringPtr(d.GoogleID),
		FacebookID:      nullStringPtr(d.FacebookID),
		TwitterID:       nullStringPtr(d.TwitterID),
		PasswordHash:    nullStringPtr(d.PasswordHash),
		Verified:        d.Verified,
		Enabled:         d.Enabled,
		Admin:           d.Admin,
		LoginIP:         d.Login.IP,
		LoginAgent:      d.Login.UserAgent,
		LoginAt:         d.Login.At,
		RegisteredIP:    d.Registered.IP,
		RegisteredAgent: d.Registered.UserAgent,
		RegisteredAt:    d.Registered.At,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Email:        m.Email.String,
		GivenName:    m.GivenName.String,
		FamilyName:   m.FamilyName.String,
		GoogleID:     stringPtr(m.GoogleID),
		FacebookID:   stringPtr(m.FacebookID),
		TwitterID:    stringPtr(m.TwitterID),
		PasswordHash: stringPtr(m.PasswordHash),
		Verified:     m.Verified,
		Enabled:      m.Enabled,
		Admin:        m.Admin,
		Login: domain.AccessInfo{
			IP:        m.LoginIP,
			UserAgent: m.LoginAgent,
			At:        m.LoginAt,
		},
		Registered: domain.AccessInfo{
			IP:        m.RegisteredIP,
			UserAgent: m.RegisteredAgent,
			At:        m.RegisteredAt,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullString(*s)
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
