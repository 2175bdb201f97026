package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"AMADEUS_BASE_URL", "AM_ORIGIN", "AM_CURRENCY", "TICK_INTERVAL",
		"SCHEDULE_TIMEZONE", "MARKER_BACKEND", "ECHO_VERIFY", "SCHEDULE_RETRY_FAILED",
		"AM_DEST_ORDER", "DISCORD_API_BASE_URL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AmadeusBaseURL != "https://api.amadeus.com" {
		t.Fatalf("AmadeusBaseURL default, got %q", cfg.AmadeusBaseURL)
	}
	if cfg.Origin != "SCL" || cfg.Currency != "CLP" {
		t.Fatalf("origin/currency defaults, got %s/%s", cfg.Origin, cfg.Currency)
	}
	if cfg.TickInterval != 5*time.Minute {
		t.Fatalf("TickInterval default, got %s", cfg.TickInterval)
	}
	if cfg.ScheduleTimezone != "America/Santiago" {
		t.Fatalf("timezone default, got %s", cfg.ScheduleTimezone)
	}
	if cfg.MarkerBackend != "memory" {
		t.Fatalf("marker backend default, got %s", cfg.MarkerBackend)
	}
	if cfg.EchoVerify {
		t.Fatalf("echo verify must be off by default")
	}
	if cfg.ScheduleRetryFailed {
		t.Fatalf("retry failed must be off by default")
	}
}

func TestLoadConfigEchoVerifyOnlyLiteralTrue(t *testing.T) {
	t.Setenv("ECHO_VERIFY", "1")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.EchoVerify {
		t.Fatalf("ECHO_VERIFY=1 must not enable echo mode")
	}

	t.Setenv("ECHO_VERIFY", "true")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.EchoVerify {
		t.Fatalf("ECHO_VERIFY=true must enable echo mode")
	}
}

func TestLoadConfigRejectsUnknownMarkerBackend(t *testing.T) {
	t.Setenv("MARKER_BACKEND", "etcd")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadConfigPostgresNeedsDSN(t *testing.T) {
	t.Setenv("MARKER_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without POSTGRES_DSN")
	}
}

func TestLoadDestinationsDefault(t *testing.T) {
	got, err := loadDestinations([]string{"PATH=/bin"}, "")
	if err != nil {
		t.Fatalf("loadDestinations: %v", err)
	}
	if len(got) != 2 || got[0].Code != "TYO" || got[1].Code != "OSA" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadDestinationsOrder(t *testing.T) {
	env := []string{
		"AM_DEST_OSAKA=OSA",
		"AM_DEST_TOKYO=TYO",
		"AM_DEST_LIMA=LIM",
		"AM_DEST_EMPTY=",
		"AM_DEST_ORDER=tokyo",
	}
	got, err := loadDestinations(env, "tokyo")
	if err != nil {
		t.Fatalf("loadDestinations: %v", err)
	}
	var names []string
	for _, d := range got {
		names = append(names, d.Name)
	}
	if strings.Join(names, ",") != "TOKYO,LIMA,OSAKA" {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestLoadDestinationsOrderUnknownName(t *testing.T) {
	if _, err := loadDestinations([]string{"AM_DEST_TOKYO=TYO"}, "OSAKA"); err == nil {
		t.Fatalf("expected error for unknown name in order")
	}
}

func TestValidateJobListsMissing(t *testing.T) {
	cfg := &Config{Destinations: []Destination{{Name: "TOKYO", Code: "TYO"}}}
	err := cfg.ValidateJob()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, k := range []string{"AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET", "DISCORD_TOKEN", "DISCORD_CHANNEL_ID"} {
		if !strings.Contains(err.Error(), k) {
			t.Fatalf("expected %s in %q", k, err)
		}
	}

	cfg.AmadeusClientID, cfg.AmadeusClientSecret = "id", "secret"
	cfg.DiscordToken, cfg.DiscordChannelID = "tok", "chan"
	if err := cfg.ValidateJob(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
