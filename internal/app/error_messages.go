// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// lockbox server handlers and the client error mapping.
//
// All Msg* constants are human-readable message strings that are written into
// the "error" or "message" field of JSON response bodies. Keeping them in one
// place lets the client map a status code plus message back to a typed error.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials is returned for an unknown email and for a wrong
	// master password alike.
	MsgInvalidCredentials = "invalid email or password"

	// MsgAccountLocked is returned while an account is locked after too many
	// failed logins. The response also carries unlockAt.
	MsgAccountLocked = "account is temporarily locked"

	// MsgCurrentPasswordIncorrect is returned by change-password when the
	// current master password does not verify.
	MsgCurrentPasswordIncorrect = "current password is incorrect"

	// MsgEmailAlreadyExists is returned when a registration attempt uses an
	// email that is already taken.
	MsgEmailAlreadyExists = "email already registered"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgSessionRevoked is returned when the token is valid but its session
	// was logged out, expired or revoked by a password change.
	MsgSessionRevoked = "session revoked"

	// MsgItemNotFound is returned for a missing item and for an item owned
	// by another user.
	MsgItemNotFound = "item not found"

	// MsgNotFound is returned for unknown routes and unsupported methods.
	MsgNotFound = "not found"

	// MsgLoggedOut confirms a logout.
	MsgLoggedOut = "logged out"

	// MsgPasswordChanged confirms a master password change.
	MsgPasswordChanged = "password changed, please log in again"

	// MsgItemDeleted confirms an item deletion.
	MsgItemDeleted = "item deleted"

	// MsgSessionNotFound is returned when a session to revoke does not
	// exist or belongs to another user.
	MsgSessionNotFound = "session not found"

	// MsgCategoryNotFound is returned for a missing category and for a
	// category owned by another user.
	MsgCategoryNotFound = "category not found"

	MsgSettingsUpdated = "settings updated"
	MsgAccountDeleted  = "account deleted"
)
