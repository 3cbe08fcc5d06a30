// Copyright © 2025 OSINTAMI. This is not yours.

//go:build !unix

package common

func isEXDEV(err error) bool { return false }
