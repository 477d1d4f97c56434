package jjrepo

import (
	"errors"
	"os"
	"strings"
)

const (
	syntheticUserNameConstant           = "jjprompt"
	syntheticUserEmailConstant          = "jjprompt@localhost"
	jjConfigEnvironmentVariableConstant = "JJ_CONFIG"
	jjUserEnvironmentVariableConstant   = "JJ_USER"
	jjEmailEnvironmentVariableConstant  = "JJ_EMAIL"
	settingsUnavailableMessageConstant  = "synthetic settings unavailable"
)

// ErrSettingsUnavailable reports that the synthetic identity failed validation.
var ErrSettingsUnavailable = errors.New(settingsUnavailableMessageConstant)

// SyntheticSettings is the minimal in-memory identity handed to the jj
// subprocess. JJ_CONFIG is pointed at the null device so jj never reads
// user configuration from disk.
type SyntheticSettings struct {
	UserName  string
	UserEmail string
}

// NewSyntheticSettings constructs and validates the synthetic identity.
func NewSyntheticSettings() (SyntheticSettings, error) {
	settings := SyntheticSettings{
		UserName:  syntheticUserNameConstant,
		UserEmail: syntheticUserEmailConstant,
	}
	if len(strings.TrimSpace(settings.UserName)) == 0 || len(strings.TrimSpace(settings.UserEmail)) == 0 {
		return SyntheticSettings{}, ErrSettingsUnavailable
	}
	return settings, nil
}

// EnvironmentVariables renders the settings as subprocess environment overrides.
func (settings SyntheticSettings) EnvironmentVariables() map[string]string {
	return map[string]string{
		jjConfigEnvironmentVariableConstant: os.DevNull,
		jjUserEnvironmentVariableConstant:   settings.UserName,
		jjEmailEnvironmentVariableConstant:  settings.UserEmail,
	}
}
