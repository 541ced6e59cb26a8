package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skmalhotra72/MediBridge24x7-DotCom-Main-App-sub001/config"
)

const (
	// TenantsKey is the hash of subdomain -> clinic entries.
	TenantsKey = "medibridge:tenants"
	// TenantsChannel carries registry change notifications.
	TenantsChannel = "medibridge:tenants:changed"
)

// Config is the client connection plus where the clinic registry lives.
type Config struct {
	Options        goredis.Options
	TenantsKey     string
	TenantsChannel string
}

// FromCentralConfig fills unset pool sizes, timeouts and registry names
// with the service defaults.
func FromCentralConfig(c config.RedisConfig) Config {
	return Config{
		Options: goredis.Options{
			Addr:         c.Addr,
			DB:           c.DB,
			Username:     c.Username,
			Password:     c.Password,
			PoolSize:     orInt(c.PoolSize, 10),
			MinIdleConns: orInt(c.MinIdleConns, 2),
			DialTimeout:  seconds(c.DialTimeoutSeconds, 5),
			ReadTimeout:  seconds(c.ReadTimeoutSeconds, 3),
			WriteTimeout: seconds(c.WriteTimeoutSeconds, 3),
		},
		TenantsKey:     orString(c.TenantsKey, TenantsKey),
		TenantsChannel: orString(c.TenantsChannel, TenantsChannel),
	}
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func seconds(n, def int) time.Duration {
	return time.Duration(orInt(n, def)) * time.Second
}
