package cfg

import "github.com/spf13/viper"

// IsSet returns whether a key is set in Viper.
func IsSet(key string) bool {
	return viper.IsSet(key)
}

// GetString returns a string value from Viper.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int value from Viper.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool value from Viper.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
