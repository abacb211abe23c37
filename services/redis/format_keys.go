package redis

import "fmt"

// FormatSMSCooldownKey builds the key for the per-phone SMS rate marker.
// Key format: "sms_rate:{phone}"
func FormatSMSCooldownKey(phone string) string {
	return fmt.Sprintf("sms_rate:%s", phone)
}

// FormatUserExistsKey builds the key for the registration existence cache.
// Key format: "user_exists:{phone}"
func FormatUserExistsKey(phone string) string {
	return fmt.Sprintf("user_exists:%s", phone)
}
