package instance

import "github.com/angelmondragon/shopstate/pkg/env"

// GetID returns the process instance identifier used in log fields.
func GetID() string {
	return env.GetFirst("local", "SHOPSTATE_INSTANCE_ID", "DYNO", "HOSTNAME")
}
