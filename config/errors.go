// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrSyntax indicates the file could not be parsed or decoded as HCL.
	ErrSyntax = errors.New("config: invalid hcl")

	// ErrInvalidSetting indicates a value outside its allowed set or range.
	ErrInvalidSetting = errors.New("config: invalid setting")
)
