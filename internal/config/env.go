package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"safari-backend/internal/domain"
)

type Env struct {
	AppAddr        string
	GinMode        string
	AllowedOrigins []string
	JWTSecret      string
	StoreDriver    string
	DSN            string
	AdminUsername  string
	AdminPassword  string
	SweepInterval  time.Duration
	Rules          domain.Rules
}

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"

	defaultTimeZone = "Asia/Kolkata"
)

func LoadEnv() Env {
	rules := domain.DefaultRules()
	rules.SlotLimit = envInt("SLOT_LIMIT", rules.SlotLimit)
	rules.HoldDuration = envDuration("HOLD_DURATION", rules.HoldDuration)
	rules.AdultRate = int64(envInt("ADULT_RATE", int(rules.AdultRate)))
	rules.ChildRate = int64(envInt("CHILD_RATE", int(rules.ChildRate)))
	rules.VehicleCapacity = envInt("VEHICLE_CAPACITY", rules.VehicleCapacity)
	if slots := envList("TIME_SLOTS"); len(slots) > 0 {
		rules.TimeSlots = slots
	}
	rules.Location = loadLocation(envOrDefault("SAFARI_TZ", defaultTimeZone))

	sweep := envDuration("SWEEP_INTERVAL", domain.MaxSweepInterval)
	if sweep > domain.MaxSweepInterval {
		log.Printf("warning: SWEEP_INTERVAL %s above %s, clamping", sweep, domain.MaxSweepInterval)
		sweep = domain.MaxSweepInterval
	}

	driver := strings.ToLower(envOrDefault("STORE_DRIVER", StoreMySQL))
	if driver != StoreMySQL && driver != StoreMemory {
		log.Printf("warning: unknown STORE_DRIVER %q, using %s", driver, StoreMySQL)
		driver = StoreMySQL
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		log.Printf("warning: JWT_SECRET not set, using an insecure development secret")
		secret = "dev-secret-change-me"
	}

	return Env{
		AppAddr:        envOrDefault("APP_ADDR", ":8080"),
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		AllowedOrigins: envList("CORS_ALLOWED_ORIGINS"),
		JWTSecret:      secret,
		StoreDriver:    driver,
		DSN:            resolveMySQLDSN(),
		AdminUsername:  strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		SweepInterval:  sweep,
		Rules:          rules,
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("warning: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping blanks.
func envList(key string) []string {
	out := []string{}
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("warning: unknown SAFARI_TZ %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}
