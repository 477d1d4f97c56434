package prompt

import "fmt"

const (
	configurationWorkingDirectoryKeyConstant  = "cwd"
	configurationIDLengthKeyConstant          = "id_length"
	configurationSymbolKeyConstant            = "symbol"
	configurationColorDisabledKeyConstant     = "color_disabled"
	configurationFileCountDisabledKeyConstant = "file_count_disabled"
	configurationKeyTemplateConstant          = "%s.%s"
)

// Rendering defaults shared between flags and configuration.
const (
	DefaultIDLength = uint(4)
	DefaultSymbol   = "  "
)

// CommandConfiguration captures the persisted configuration for the prompt command.
type CommandConfiguration struct {
	WorkingDirectory  string `mapstructure:"cwd"`
	IDLength          uint   `mapstructure:"id_length"`
	Symbol            string `mapstructure:"symbol"`
	ColorDisabled     bool   `mapstructure:"color_disabled"`
	FileCountDisabled bool   `mapstructure:"file_count_disabled"`
}

// DefaultConfigurationValues exposes viper defaults underneath the provided configuration key prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		prefixedConfigurationKey(configurationKeyPrefix, configurationWorkingDirectoryKeyConstant):  "",
		prefixedConfigurationKey(configurationKeyPrefix, configurationIDLengthKeyConstant):          DefaultIDLength,
		prefixedConfigurationKey(configurationKeyPrefix, configurationSymbolKeyConstant):            DefaultSymbol,
		prefixedConfigurationKey(configurationKeyPrefix, configurationColorDisabledKeyConstant):     false,
		prefixedConfigurationKey(configurationKeyPrefix, configurationFileCountDisabledKeyConstant): false,
	}
}

func prefixedConfigurationKey(configurationKeyPrefix string, configurationKey string) string {
	if len(configurationKeyPrefix) == 0 {
		return configurationKey
	}
	return fmt.Sprintf(configurationKeyTemplateConstant, configurationKeyPrefix, configurationKey)
}
