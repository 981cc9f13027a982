// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Sign-in Constraints

const (
	// StateLength is the byte length of the random OAuth state and nonce.
	StateLength = 32
)

// # Messages

const (
	MsgSignInExpired = "Sign-in expired, please try again"
	MsgSignInFailed  = "Sign-in failed"
	MsgInvalidToken  = "Invalid or expired session"
)

// Query parameters of the provider callback.
const (
	ParamState = "state"
	ParamCode  = "code"
	ParamError = "error"
	ParamPath  = "path"
)
