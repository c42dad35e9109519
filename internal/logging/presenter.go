// Copyright (c) 2025 The grainmgr Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

// PresentError formats an error for the terminal with secrets masked. An empty
// context yields the bare message.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(err.Error())
	if context == "" {
		return msg
	}
	return context + ": " + msg
}
