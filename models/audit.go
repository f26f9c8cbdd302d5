// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuditAction names a security-relevant event.
type AuditAction string

const (
	AuditRegister        AuditAction = "REGISTER"
	AuditLoginSuccess    AuditAction = "LOGIN_SUCCESS"
	AuditLoginFailed     AuditAction = "LOGIN_FAILED"
	AuditLoginLocked     AuditAction = "LOGIN_LOCKED"
	AuditLogout          AuditAction = "LOGOUT"
	AuditPasswordChanged AuditAction = "PASSWORD_CHANGED"
	AuditSessionRevoked  AuditAction = "SESSION_REVOKED"
	AuditAccountDeleted  AuditAction = "ACCOUNT_DELETED"
)

// AuditEvent is one row of the audit log.
type AuditEvent struct {
	ID string `json:"id"`

	// UserID is empty for events about unknown accounts.
	UserID string `json:"user_id,omitempty"`

	Action    AuditAction `json:"action"`
	IPAddress string      `json:"ip_address,omitempty"`
	UserAgent string      `json:"user_agent,omitempty"`

	// Details is a small JSON object with event specific data. It must
	// never contain passwords or key material.
	Details map[string]any `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AuditEvent model.
func (a AuditEvent) TableName() string {
	return "audit_log"
}
